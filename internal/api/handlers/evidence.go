package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"credo/internal/domain"
	"credo/internal/service"

	"github.com/google/uuid"
)

type EvidenceHandler struct {
	svc *service.EvidenceService
}

func NewEvidenceHandler(svc *service.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{svc: svc}
}

type indexEvidenceRequest struct {
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
}

func (h *EvidenceHandler) Index(w http.ResponseWriter, r *http.Request) {
	var req indexEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item := &domain.EvidenceItem{
		ID:      uuid.New(),
		Content: req.Content,
		Source:  req.Source,
	}

	if err := h.svc.Index(r.Context(), item); err != nil {
		if errors.Is(err, service.ErrEvidenceContentEmpty) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to index evidence")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *EvidenceHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	topK, _ := strconv.Atoi(r.URL.Query().Get("top_k"))

	items, err := h.svc.Search(r.Context(), query, topK)
	if err != nil {
		if errors.Is(err, service.ErrSearchQueryEmpty) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to search evidence")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": items,
	})
}
