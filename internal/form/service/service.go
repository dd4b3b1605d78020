package service

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rutcheck/internal/form/metrics"
	"rutcheck/internal/input"
	"rutcheck/internal/phone"
	"rutcheck/internal/rut"
	dErrors "rutcheck/pkg/domain-errors"
	"rutcheck/pkg/requestcontext"
)

const tracerName = "rutcheck/internal/form/service"

// Service exposes the pure rut, phone and input functions to the transport
// layer, adding logging, metrics and tracing around them. It holds no
// per-call state and is safe for concurrent use.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*serviceConfig)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) { c.logger = logger }
}

// WithMetrics sets the metrics sink. Nil metrics are ignored.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *serviceConfig) { c.metrics = m }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *serviceConfig) { c.tracer = t }
}

func New(opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer(tracerName)
	}
	return &Service{
		logger:  cfg.logger,
		metrics: cfg.metrics,
		tracer:  cfg.tracer,
	}
}

// ValidateRUT judges a complete RUT.
func (s *Service) ValidateRUT(ctx context.Context, raw string) rut.Result {
	ctx, span := s.tracer.Start(ctx, "form.ValidateRUT")
	defer span.End()

	res := rut.Validate(raw)
	span.SetAttributes(
		attribute.Bool("rut.valid", res.Valid),
		attribute.String("rut.reason", string(res.Reason)),
	)
	s.logVerdict(ctx, res)
	s.metrics.IncrementVerdict(input.FieldRUT.String(), string(res.Reason))
	return res
}

// Format re-renders a field as the user types.
func (s *Service) Format(ctx context.Context, field input.Field, text string, cursor int) input.FieldEdit {
	ctx, span := s.tracer.Start(ctx, "form.Format", trace.WithAttributes(
		attribute.String("field", field.String()),
	))
	defer span.End()

	edit := input.Format(field, text, cursor)
	s.recordEdit(ctx, field, text, edit)
	return edit
}

// Paste sanitizes pasted text and formats the result.
func (s *Service) Paste(ctx context.Context, field input.Field, text string) input.FieldEdit {
	ctx, span := s.tracer.Start(ctx, "form.Paste", trace.WithAttributes(
		attribute.String("field", field.String()),
	))
	defer span.End()

	edit := input.Paste(field, text)
	s.recordEdit(ctx, field, text, edit)
	return edit
}

// Keystroke reports whether the key should reach the field.
func (s *Service) Keystroke(ctx context.Context, field input.Field, key string) bool {
	accepted := input.AllowKey(field, key)
	s.metrics.IncrementKeystroke(field.String(), accepted)
	if !accepted {
		s.logger.DebugContext(ctx, "keystroke suppressed",
			"request_id", requestcontext.RequestID(ctx),
			"field", field,
			"mobile", requestcontext.Device(ctx).Mobile,
		)
	}
	return accepted
}

// PhoneResult is a normalized phone number in both renderings.
type PhoneResult struct {
	Display string
	E164    string
}

// NormalizePhone cleans a submitted phone number.
func (s *Service) NormalizePhone(ctx context.Context, raw string) (PhoneResult, error) {
	ctx, span := s.tracer.Start(ctx, "form.NormalizePhone")
	defer span.End()

	n, err := phone.Normalize(raw)
	if err != nil {
		s.metrics.IncrementVerdict(input.FieldPhone.String(), string(phone.StatusInvalid))
		return PhoneResult{}, dErrors.Wrap(err, dErrors.CodeValidation, phone.FormatHint)
	}
	e164, err := n.E164()
	if err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "failed to render phone as E.164",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return PhoneResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to normalize phone")
	}

	s.metrics.IncrementVerdict(input.FieldPhone.String(), string(phone.StatusValid))
	return PhoneResult{Display: n.Display(), E164: e164}, nil
}

func (s *Service) recordEdit(ctx context.Context, field input.Field, text string, edit input.FieldEdit) {
	state := edit.Annotation.State
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("annotation.state", string(state)),
		attribute.Bool("text.changed", edit.Changed),
	)
	if state != input.StateNone {
		s.metrics.IncrementVerdict(field.String(), string(state))
	}
	s.logger.DebugContext(ctx, "field formatted",
		"request_id", requestcontext.RequestID(ctx),
		"field", field,
		"input_length", len(text),
		"changed", edit.Changed,
		"state", state,
	)
}

// logVerdict keeps the diagnostic record of a RUT computation. Only the check
// digits are logged; the body is masked.
func (s *Service) logVerdict(ctx context.Context, res rut.Result) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"valid", res.Valid,
		"reason", res.Reason,
	}
	if res.Valid {
		attrs = append(attrs, "rut", rut.MustParse(res.Body+string(res.CheckDigit)).Mask())
	}
	if res.Reason == rut.ReasonCheckDigitMismatch {
		attrs = append(attrs,
			"supplied_dv", string(res.CheckDigit),
			"expected_dv", string(res.Expected),
		)
	}
	s.logger.DebugContext(ctx, "rut validated", attrs...)
}
