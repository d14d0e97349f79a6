package handle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"bfhl/api/internal/ai"
	"bfhl/api/internal/logger"
	"bfhl/api/internal/numeric"
	"bfhl/api/internal/validate"
)

// MaxBodyBytes caps the /bfhl request body.
const MaxBodyBytes = 64 << 10

func (h *Handle) BFHL(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			h.errorJSON(w, http.StatusBadRequest, validate.MsgBodyTooLarge)
			return
		}
		h.errorJSON(w, http.StatusBadRequest, validate.MsgInvalidJSON)
		return
	}

	req, err := ParseRequest(body, h.cfg.Limits)
	if err != nil {
		h.fail(w, r, req, err)
		return
	}

	data, err := h.run(r.Context(), req)
	if err != nil {
		h.fail(w, r, req, err)
		return
	}
	h.ok(w, data)
}

func (h *Handle) run(ctx context.Context, req Request) (any, error) {
	switch req.Op {
	case OpFibonacci:
		return numeric.Fibonacci(req.N), nil
	case OpPrime:
		return numeric.FilterPrimes(req.Values), nil
	case OpLCM:
		return numeric.Reduce(req.Values, numeric.OpLCM), nil
	case OpHCF:
		return numeric.Reduce(req.Values, numeric.OpGCD), nil
	case OpAI:
		if h.ai == nil {
			return nil, errors.New("ai gateway is not configured")
		}
		return h.ai.Ask(ctx, req.Question)
	default:
		return nil, fmt.Errorf("unknown op %q", req.Op)
	}
}

// fail maps err onto the envelope: validation problems are returned as-is
// with 400, everything else becomes a bare 500 and is only logged.
func (h *Handle) fail(w http.ResponseWriter, r *http.Request, req Request, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		h.errorJSON(w, http.StatusBadRequest, verr.Msg)
		return
	}

	fields := []zap.Field{zap.String("op", string(req.Op)), zap.Error(err)}
	var (
		cerr *ai.ConfigError
		perr *ai.ProviderError
	)
	switch {
	case errors.As(err, &cerr):
		fields = append(fields, zap.String("kind", "ai_config"), zap.String("provider", cerr.Provider))
	case errors.As(err, &perr):
		fields = append(fields, zap.String("kind", "ai_provider"), zap.String("provider", perr.Provider),
			zap.Int("provider_status", perr.StatusCode), zap.String("provider_body", perr.Body))
	case errors.Is(err, context.DeadlineExceeded):
		fields = append(fields, zap.String("kind", "ai_timeout"))
	}
	logger.FromContext(r.Context(), h.log).Error("bfhl request failed", fields...)
	h.InternalError(w)
}
