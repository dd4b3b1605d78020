package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rutcheck/internal/form/service"
	"rutcheck/internal/input"
	"rutcheck/internal/ratelimit/models"
	"rutcheck/internal/rut"
	dErrors "rutcheck/pkg/domain-errors"
	"rutcheck/pkg/platform/httputil"
	"rutcheck/pkg/requestcontext"
)

// Service defines the interface for form field operations.
type Service interface {
	ValidateRUT(ctx context.Context, raw string) rut.Result
	Format(ctx context.Context, field input.Field, text string, cursor int) input.FieldEdit
	Paste(ctx context.Context, field input.Field, text string) input.FieldEdit
	Keystroke(ctx context.Context, field input.Field, key string) bool
	NormalizePhone(ctx context.Context, raw string) (service.PhoneResult, error)
	CheckSubmission(ctx context.Context, sub service.Submission) (service.SubmissionResult, error)
}

// RouteLimiter supplies the quota middleware for an endpoint class.
type RouteLimiter interface {
	RateLimit(class models.EndpointClass) func(http.Handler) http.Handler
}

// Handler wires form endpoints to the form service.
type Handler struct {
	service Service
	logger  *slog.Logger
	limiter RouteLimiter
}

// Option configures a Handler.
type Option func(*Handler)

// WithRouteLimiter rate limits live and submit endpoints separately.
func WithRouteLimiter(l RouteLimiter) Option {
	return func(h *Handler) { h.limiter = l }
}

// New constructs a form handler with its dependencies.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts form endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			h.limit(r, models.ClassSubmit)
			r.Post("/rut/validate", h.HandleValidateRUT)
			r.Post("/phone/normalize", h.HandleNormalizePhone)
			r.Post("/forms/check", h.HandleCheckForm)
		})
		r.Route("/fields/{field}", func(r chi.Router) {
			h.limit(r, models.ClassLive)
			r.Post("/format", h.HandleFormat)
			r.Post("/paste", h.HandlePaste)
			r.Post("/keystroke", h.HandleKeystroke)
		})
	})
}

func (h *Handler) limit(r chi.Router, class models.EndpointClass) {
	if h.limiter != nil {
		r.Use(h.limiter.RateLimit(class))
	}
}

// HandleValidateRUT handles POST /v1/rut/validate requests.
func (h *Handler) HandleValidateRUT(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRUTRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res := h.service.ValidateRUT(ctx, req.RUT)
	httputil.WriteJSON(w, http.StatusOK, FromResult(res))
}

// HandleFormat handles POST /v1/fields/{field}/format requests.
func (h *Handler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	field, ok := h.parseField(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[FormatRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	edit := h.service.Format(ctx, field, req.Text, req.Cursor)
	httputil.WriteJSON(w, http.StatusOK, FromFieldEdit(edit))
}

// HandlePaste handles POST /v1/fields/{field}/paste requests.
func (h *Handler) HandlePaste(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	field, ok := h.parseField(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[PasteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	edit := h.service.Paste(ctx, field, req.Text)
	httputil.WriteJSON(w, http.StatusOK, FromFieldEdit(edit))
}

// HandleKeystroke handles POST /v1/fields/{field}/keystroke requests.
func (h *Handler) HandleKeystroke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	field, ok := h.parseField(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[KeystrokeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	accepted := h.service.Keystroke(ctx, field, req.Key)
	httputil.WriteJSON(w, http.StatusOK, &KeystrokeResponse{Accepted: accepted})
}

// HandleNormalizePhone handles POST /v1/phone/normalize requests.
func (h *Handler) HandleNormalizePhone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[NormalizePhoneRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.NormalizePhone(ctx, req.Telefono)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "phone normalization failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &PhoneResponse{Display: res.Display, E164: res.E164})
}

// HandleCheckForm handles POST /v1/forms/check requests.
func (h *Handler) HandleCheckForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CheckFormRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.CheckSubmission(ctx, service.Submission{RUT: req.RUT, Telefono: req.Telefono})
	if err != nil {
		h.logger.ErrorContext(ctx, "form check failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check form"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSubmission(res))
}

func (h *Handler) parseField(w http.ResponseWriter, r *http.Request) (input.Field, bool) {
	field, err := input.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "unknown field"))
		return "", false
	}
	return field, true
}
