package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"bfhl/api/internal/config"
)

const msgInternal = "Internal server error"

// Asker is the AI gateway as seen by the handlers.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

type Handle struct {
	cfg *config.Config
	ai  Asker
	log *zap.Logger
}

func New(cfg *config.Config, ai Asker, log *zap.Logger) *Handle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handle{
		cfg: cfg,
		ai:  ai,
		log: log,
	}
}

// Envelope is the body of every response. Data is set only on success,
// Error only on failure.
type Envelope struct {
	IsSuccess     bool   `json:"is_success"`
	OfficialEmail string `json:"official_email"`
	Data          any    `json:"data,omitempty"`
	Error         string `json:"error,omitempty"`
}

func (h *Handle) ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{IsSuccess: true, OfficialEmail: h.cfg.OfficialEmail, Data: data})
}

func (h *Handle) errorJSON(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, Envelope{IsSuccess: false, OfficialEmail: h.cfg.OfficialEmail, Error: msg})
}

// InternalError writes the generic 500 envelope.
func (h *Handle) InternalError(w http.ResponseWriter) {
	h.errorJSON(w, http.StatusInternalServerError, msgInternal)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
