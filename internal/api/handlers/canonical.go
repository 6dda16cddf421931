package handlers

import (
	"encoding/json"
	"net/http"

	"credo/internal/canon"
)

// CanonicalHandler exposes the statement canonicalizer, so external tools
// can compute the same ids the session core derives.
type CanonicalHandler struct{}

func NewCanonicalHandler() *CanonicalHandler {
	return &CanonicalHandler{}
}

type canonicalRequest struct {
	Statement string `json:"statement"`
}

type canonicalResponse struct {
	Statement   string `json:"statement"`
	Normalized  string `json:"normalized"`
	CanonicalID string `json:"canonical_id"`
}

func (h *CanonicalHandler) Derive(w http.ResponseWriter, r *http.Request) {
	var req canonicalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, canonicalResponse{
		Statement:   req.Statement,
		Normalized:  canon.Normalize(req.Statement),
		CanonicalID: canon.ID(req.Statement),
	})
}
