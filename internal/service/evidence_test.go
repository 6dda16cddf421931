package service

import (
	"context"
	"errors"
	"testing"

	"credo/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockEvidenceStore mocks the EvidenceStore interface.
type MockEvidenceStore struct {
	mock.Mock
}

func (m *MockEvidenceStore) Create(ctx context.Context, item *domain.EvidenceItem, embedding []float32) error {
	args := m.Called(ctx, item, embedding)
	return args.Error(0)
}

func (m *MockEvidenceStore) FindSimilar(ctx context.Context, embedding []float32, topK int) ([]domain.EvidenceItem, error) {
	args := m.Called(ctx, embedding, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EvidenceItem), args.Error(1)
}

// MockEmbedder mocks the EmbeddingClient interface.
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func TestEvidenceIndex(t *testing.T) {
	store := new(MockEvidenceStore)
	embedder := new(MockEmbedder)
	svc := NewEvidenceService(store, embedder, zap.NewNop())

	item := &domain.EvidenceItem{ID: uuid.New(), Content: "link flaps after firmware 2.1", Source: "ticket-42"}
	vec := []float32{0.1, 0.2}

	embedder.On("Embed", mock.Anything, item.Content).Return(vec, nil)
	store.On("Create", mock.Anything, item, vec).Return(nil)

	err := svc.Index(context.Background(), item)

	assert.NoError(t, err)
	store.AssertExpectations(t)
	embedder.AssertExpectations(t)
}

func TestEvidenceIndexEmptyContent(t *testing.T) {
	svc := NewEvidenceService(new(MockEvidenceStore), new(MockEmbedder), zap.NewNop())

	err := svc.Index(context.Background(), &domain.EvidenceItem{})

	assert.ErrorIs(t, err, ErrEvidenceContentEmpty)
}

func TestEvidenceIndexEmbedFailure(t *testing.T) {
	store := new(MockEvidenceStore)
	embedder := new(MockEmbedder)
	svc := NewEvidenceService(store, embedder, zap.NewNop())

	embedder.On("Embed", mock.Anything, mock.Anything).Return(nil, errors.New("quota"))

	err := svc.Index(context.Background(), &domain.EvidenceItem{Content: "x"})

	assert.Error(t, err)
	store.AssertNotCalled(t, "Create")
}

func TestEvidenceSearch(t *testing.T) {
	store := new(MockEvidenceStore)
	embedder := new(MockEmbedder)
	svc := NewEvidenceService(store, embedder, zap.NewNop())

	vec := []float32{0.3}
	want := []domain.EvidenceItem{{ID: uuid.New(), Content: "a", Score: 0.9}}

	embedder.On("Embed", mock.Anything, "flap").Return(vec, nil)
	store.On("FindSimilar", mock.Anything, vec, 3).Return(want, nil)

	got, err := svc.Search(context.Background(), "flap", 3)

	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEvidenceSearchDefaultsTopK(t *testing.T) {
	store := new(MockEvidenceStore)
	embedder := new(MockEmbedder)
	svc := NewEvidenceService(store, embedder, zap.NewNop())

	embedder.On("Embed", mock.Anything, "flap").Return([]float32{0.1}, nil)
	store.On("FindSimilar", mock.Anything, mock.Anything, DefaultSearchTopK).Return([]domain.EvidenceItem{}, nil)

	_, err := svc.Search(context.Background(), "flap", 0)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestEvidenceSearchEmptyQuery(t *testing.T) {
	svc := NewEvidenceService(new(MockEvidenceStore), new(MockEmbedder), zap.NewNop())

	_, err := svc.Search(context.Background(), "", 3)

	assert.ErrorIs(t, err, ErrSearchQueryEmpty)
}
