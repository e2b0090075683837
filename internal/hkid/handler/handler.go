package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hkid-gateway/internal/hkid/service"
	"hkid-gateway/internal/ratelimit/models"
	"hkid-gateway/pkg/platform/httputil"
	"hkid-gateway/pkg/requestcontext"
)

// Service defines the interface for hkid operations.
type Service interface {
	Validate(ctx context.Context, req service.ValidateRequest) (*service.ValidateResult, error)
	ValidateBatch(ctx context.Context, hkids []string, mustBeKnown bool) ([]service.BatchItem, error)
	Generate(ctx context.Context, req service.GenerateRequest) ([]string, error)
	CheckDigit(ctx context.Context, body string) (*service.CheckDigitResult, error)
	Prefixes() []service.PrefixInfo
	Prefix(code string) (service.PrefixInfo, error)
	Symbols() []service.SymbolInfo
	Symbol(text string) service.SymbolInfo
}

// RateLimiter supplies per-class rate limit middleware.
type RateLimiter interface {
	RateLimit(class models.EndpointClass) func(http.Handler) http.Handler
}

// Handler wires hkid endpoints to the hkid service.
type Handler struct {
	service Service
	logger  *slog.Logger
	limiter RateLimiter
}

// New constructs an hkid handler. limiter may be nil to leave routes unlimited.
func New(service Service, logger *slog.Logger, limiter RateLimiter) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		limiter: limiter,
	}
}

// Register mounts hkid endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/hkid", func(r chi.Router) {
		r.With(h.limit(models.ClassValidate)).Post("/validate", h.HandleValidate)
		r.With(h.limit(models.ClassValidate)).Post("/validate/batch", h.HandleValidateBatch)
		r.With(h.limit(models.ClassGenerate)).Post("/generate", h.HandleGenerate)

		r.Group(func(r chi.Router) {
			r.Use(h.limit(models.ClassRead))
			r.Get("/check-digit/{body}", h.HandleCheckDigit)
			r.Get("/prefixes", h.HandleListPrefixes)
			r.Get("/prefixes/{code}", h.HandleGetPrefix)
			r.Get("/symbols", h.HandleListSymbols)
			r.Get("/symbols/{symbol}", h.HandleGetSymbol)
		})
	})
}

func (h *Handler) limit(class models.EndpointClass) func(http.Handler) http.Handler {
	if h.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return h.limiter.RateLimit(class)
}

// HandleValidate handles POST /hkid/validate requests.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Validate(ctx, service.ValidateRequest{
		HKID:        req.HKID,
		MustBeKnown: req.MustBeKnown,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromValidateResult(result))
}

// HandleValidateBatch handles POST /hkid/validate/batch requests.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	items, err := h.service.ValidateBatch(ctx, req.HKIDs, req.MustBeKnown)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch validation failed",
			"request_id", requestID,
			"batch_size", len(req.HKIDs),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := FromBatch(items)
	h.logger.InfoContext(ctx, "batch validation served",
		"request_id", requestID,
		"valid", resp.Valid,
		"invalid", resp.Invalid,
		"rejected", resp.Rejected,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGenerate handles POST /hkid/generate requests.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	ids, err := h.service.Generate(ctx, service.GenerateRequest{
		Prefix:      req.Prefix,
		MustBeKnown: req.MustBeKnown,
		Count:       req.Count,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &GenerateResponse{HKIDs: ids})
}

// HandleCheckDigit handles GET /hkid/check-digit/{body} requests.
func (h *Handler) HandleCheckDigit(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CheckDigit(r.Context(), chi.URLParam(r, "body"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &CheckDigitResponse{
		Body:       result.Body,
		CheckDigit: string(result.CheckDigit),
		HKID:       result.Formatted,
	})
}

// HandleListPrefixes handles GET /hkid/prefixes requests.
func (h *Handler) HandleListPrefixes(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromPrefixes(h.service.Prefixes()))
}

// HandleGetPrefix handles GET /hkid/prefixes/{code} requests.
func (h *Handler) HandleGetPrefix(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Prefix(chi.URLParam(r, "code"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	known := true
	httputil.WriteJSON(w, http.StatusOK, &PrefixResponse{
		Code:        info.Code,
		Known:       &known,
		Description: info.Description,
	})
}

// HandleListSymbols handles GET /hkid/symbols requests.
func (h *Handler) HandleListSymbols(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromSymbols(h.service.Symbols()))
}

// HandleGetSymbol handles GET /hkid/symbols/{symbol} requests.
func (h *Handler) HandleGetSymbol(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromSymbol(h.service.Symbol(chi.URLParam(r, "symbol"))))
}
