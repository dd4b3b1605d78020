package service

import (
	"context"

	"rutcheck/internal/input"
	"rutcheck/internal/phone"
	"rutcheck/internal/rut"
	"rutcheck/pkg/platform/validation"
	"rutcheck/pkg/requestcontext"
)

// Submission is a completed form as posted by the browser.
//
// The RUT must already be in display form (the live formatter guarantees
// this for well-behaved clients) and verify; the phone may be in any shape
// phone.Normalize accepts.
type Submission struct {
	RUT      string `json:"rut" validate:"required,rut_display,rut"`
	Telefono string `json:"telefono" validate:"required,cl_mobile"`
}

// FieldVerdict is the annotation for one submitted field plus its cleaned
// value when valid.
type FieldVerdict struct {
	Annotation input.Annotation
	Value      string
}

// SubmissionResult is the per-field outcome of CheckSubmission.
type SubmissionResult struct {
	Valid    bool
	RUT      FieldVerdict
	Telefono FieldVerdict
}

// CheckSubmission validates a whole form. It never returns an error for bad
// field values; those are reported per field.
func (s *Service) CheckSubmission(ctx context.Context, sub Submission) (SubmissionResult, error) {
	ctx, span := s.tracer.Start(ctx, "form.CheckSubmission")
	defer span.End()

	failures, err := validation.Fields(sub)
	if err != nil {
		span.RecordError(err)
		return SubmissionResult{}, err
	}

	byField := make(map[string]validation.FieldError, len(failures))
	for _, f := range failures {
		byField[f.Field] = f
	}

	result := SubmissionResult{
		RUT:      rutVerdict(sub.RUT, byField),
		Telefono: phoneVerdict(sub.Telefono, byField),
	}
	result.Valid = len(failures) == 0

	s.metrics.IncrementSubmission(result.Valid)
	s.logger.InfoContext(ctx, "submission checked",
		"request_id", requestcontext.RequestID(ctx),
		"valid", result.Valid,
		"rut_state", result.RUT.Annotation.State,
		"telefono_state", result.Telefono.Annotation.State,
	)
	return result, nil
}

func rutVerdict(raw string, failures map[string]validation.FieldError) FieldVerdict {
	fe, failed := failures["rut"]
	if !failed {
		r := rut.MustParse(raw)
		return FieldVerdict{
			Annotation: input.Annotation{State: input.StateValid, Message: rut.ReasonValid.Message()},
			Value:      r.String(),
		}
	}

	msg := validation.Describe(fe)
	if fe.Tag == "rut" {
		// the specific gate is more useful to the user than the tag name
		msg = rut.Validate(raw).Message
	}
	return FieldVerdict{Annotation: input.Annotation{State: input.StateInvalid, Message: msg}}
}

func phoneVerdict(raw string, failures map[string]validation.FieldError) FieldVerdict {
	fe, failed := failures["telefono"]
	if failed {
		msg := phone.FormatHint
		if fe.Tag == "required" {
			msg = validation.Describe(fe)
		}
		return FieldVerdict{Annotation: input.Annotation{State: input.StateInvalid, Message: msg}}
	}

	n, err := phone.Normalize(raw)
	if err != nil {
		return FieldVerdict{Annotation: input.Annotation{State: input.StateInvalid, Message: phone.FormatHint}}
	}
	return FieldVerdict{
		Annotation: input.Annotation{State: input.StateValid, Message: phone.ValidMessage},
		Value:      n.Display(),
	}
}
