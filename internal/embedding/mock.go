package embedding

import (
	"context"
	"crypto/sha256"
)

// MockDimensions is the vector size produced by the mock client. Small on
// purpose; tests never need production-sized vectors.
const MockDimensions = 32

// MockClient produces deterministic vectors from the input text alone, so
// tests and offline runs get stable similarity behavior without a network.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) Embed(ctx context.Context, text string) ([]float32, error) {
	sum := sha256.Sum256([]byte(text))
	vec := make([]float32, MockDimensions)
	for i := range vec {
		vec[i] = float32(sum[i])/255.0 - 0.5
	}
	return vec, nil
}
