package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"credo/internal/config"
	"credo/internal/domain"
	"credo/internal/service"
)

type SessionHandler struct {
	svc *service.SessionService
}

func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// runSessionRequest mirrors domain.SessionRequest with an optional config
// block, so an omitted config is distinguishable from an explicit gamma of
// zero.
type runSessionRequest struct {
	Claim         string                `json:"claim"`
	Roots         []domain.RootSpec     `json:"roots"`
	Config        *domain.SessionConfig `json:"config"`
	Credits       int                   `json:"credits"`
	RequiredSlots map[string]any        `json:"required_slots,omitempty"`
}

// Run initializes a reasoning session and returns its result snapshot.
// Validation failures map to 400; everything else the session absorbs into
// the result itself (stop reason, anomaly flag).
func (h *SessionHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req runSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := domain.SessionConfig{Gamma: config.DefaultGamma()}
	if req.Config != nil {
		cfg = *req.Config
	}

	result, err := h.svc.Run(r.Context(), &domain.SessionRequest{
		Claim:         req.Claim,
		Roots:         req.Roots,
		Config:        cfg,
		Credits:       req.Credits,
		RequiredSlots: req.RequiredSlots,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGammaOutOfRange),
			errors.Is(err, service.ErrReservedRootID),
			errors.Is(err, service.ErrDuplicateRootID),
			errors.Is(err, service.ErrNegativeCredits):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to run session")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
