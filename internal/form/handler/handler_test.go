package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rutcheck/internal/form/handler/mocks"
	"rutcheck/internal/form/service"
	"rutcheck/internal/input"
	"rutcheck/internal/ratelimit/models"
	"rutcheck/internal/rut"
	dErrors "rutcheck/pkg/domain-errors"
	"rutcheck/pkg/requestcontext"
	"rutcheck/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mock_service.go -package=mocks Service
type FormHandlerSuite struct {
	suite.Suite
	svc    *mocks.MockService
	router http.Handler
}

func TestFormHandlerSuite(t *testing.T) {
	suite.Run(t, new(FormHandlerSuite))
}

func (s *FormHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.svc = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(s.svc, logger).Register(r)
	s.router = r
}

func (s *FormHandlerSuite) TestValidateRUT() {
	s.Run("valid rut includes display form", func() {
		s.svc.EXPECT().ValidateRUT(gomock.Any(), "123456785").Return(rut.Validate("123456785"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/rut/validate", map[string]string{"rut": "123456785"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[ValidateRUTResponse](s.T(), rr)
		s.True(resp.Valid)
		s.Equal("valid", resp.Reason)
		s.Equal("12.345.678-5", resp.Formatted)
	})

	s.Run("invalid rut is still 200", func() {
		s.svc.EXPECT().ValidateRUT(gomock.Any(), "").Return(rut.Validate(""))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/rut/validate", map[string]string{"rut": ""})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[ValidateRUTResponse](s.T(), rr)
		s.False(resp.Valid)
		s.Equal("incomplete", resp.Reason)
		s.Empty(resp.Formatted)
	})

	s.Run("malformed json", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/v1/rut/validate", `{"rut":`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("oversized input", func() {
		long := make([]byte, 65)
		for i := range long {
			long[i] = '1'
		}
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/rut/validate", map[string]string{"rut": string(long)})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}

func (s *FormHandlerSuite) TestFormat() {
	s.Run("delegates with parsed field", func() {
		s.svc.EXPECT().Format(gomock.Any(), input.FieldPhone, "912345678", 9).Return(input.FieldEdit{
			Text:       "+56 9 1234 5678",
			Cursor:     15,
			Changed:    true,
			Annotation: input.Annotation{State: input.StateValid, Message: "Valid phone number"},
		})

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/fields/telefono/format", map[string]any{"text": "912345678", "cursor": 9})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[FieldEditResponse](s.T(), rr)
		s.Equal("+56 9 1234 5678", resp.Text)
		s.Equal(15, resp.Cursor)
		s.True(resp.Changed)
		s.Equal(AnnotationResponse{State: "valid", Message: "Valid phone number"}, resp.Annotation)
	})

	s.Run("unknown field role", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/fields/email/format", map[string]any{"text": "a", "cursor": 1})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("cursor past end of text", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/fields/rut/format", map[string]any{"text": "12", "cursor": 3})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("negative cursor", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/fields/rut/format", map[string]any{"text": "12", "cursor": -1})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}

func (s *FormHandlerSuite) TestPasteAndKeystroke() {
	s.svc.EXPECT().Paste(gomock.Any(), input.FieldRUT, "12.345.678-5").Return(input.FieldEdit{
		Text:       "12.345.678-5",
		Cursor:     12,
		Annotation: input.Annotation{State: input.StateValid, Message: "Valid RUT"},
	})
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/fields/rut/paste", map[string]string{"text": "12.345.678-5"})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "cursor", float64(12))

	mobile := gomock.Cond(func(ctx context.Context) bool {
		return requestcontext.Device(ctx).Mobile && requestcontext.RequestID(ctx) == "req-mobile"
	})
	s.svc.EXPECT().Keystroke(mobile, input.FieldRUT, "K").Return(true)
	req = testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/fields/rut/keystroke", map[string]string{"key": "K"})
	req = testutil.WithMobileDevice(testutil.WithRequestID(req, "req-mobile"))
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "accepted", true)

	req = testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/fields/rut/keystroke", map[string]string{"key": ""})
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
}

func (s *FormHandlerSuite) TestNormalizePhone() {
	s.Run("trims before delegating", func() {
		s.svc.EXPECT().NormalizePhone(gomock.Any(), "912345678").Return(service.PhoneResult{
			Display: "+56 9 1234 5678",
			E164:    "+56912345678",
		}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/phone/normalize", map[string]string{"telefono": "  912345678 "})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[PhoneResponse](s.T(), rr)
		s.Equal("+56912345678", resp.E164)
	})

	s.Run("validation errors map to 400", func() {
		s.svc.EXPECT().NormalizePhone(gomock.Any(), "812345678").
			Return(service.PhoneResult{}, dErrors.New(dErrors.CodeValidation, "Format: +56 9 1234 5678"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/phone/normalize", map[string]string{"telefono": "812345678"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		body := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("validation_error", body["error"])
		s.Equal("Format: +56 9 1234 5678", body["error_description"])
	})
}

func (s *FormHandlerSuite) TestCheckForm() {
	s.Run("per-field verdicts", func() {
		s.svc.EXPECT().CheckSubmission(gomock.Any(), service.Submission{RUT: "12.345.678-5", Telefono: "812345678"}).
			Return(service.SubmissionResult{
				Valid: false,
				RUT: service.FieldVerdict{
					Annotation: input.Annotation{State: input.StateValid, Message: "Valid RUT"},
					Value:      "12.345.678-5",
				},
				Telefono: service.FieldVerdict{
					Annotation: input.Annotation{State: input.StateInvalid, Message: "Format: +56 9 1234 5678"},
				},
			}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/forms/check", map[string]string{
			"rut":      " 12.345.678-5 ",
			"telefono": "812345678",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[CheckFormResponse](s.T(), rr)
		s.False(resp.Valid)
		s.Equal(FieldVerdictResponse{State: "valid", Message: "Valid RUT", Value: "12.345.678-5"}, resp.Fields["rut"])
		s.Equal("invalid", resp.Fields["telefono"].State)
	})

	s.Run("service failure is a 500 without details", func() {
		s.svc.EXPECT().CheckSubmission(gomock.Any(), gomock.Any()).
			Return(service.SubmissionResult{}, errors.New("validator misconfigured"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/forms/check", map[string]string{"rut": "x"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "internal_error")
	})
}

func countingMiddleware(hits *int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*hits++
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouteLimiterClasses(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	svc.EXPECT().ValidateRUT(gomock.Any(), gomock.Any()).Return(rut.Validate("123456785"))
	svc.EXPECT().Keystroke(gomock.Any(), input.FieldPhone, "1").Return(true).Times(2)

	var submitHits, liveHits int
	limiter := mocks.NewMockRouteLimiter(ctrl)
	limiter.EXPECT().RateLimit(models.ClassSubmit).Return(countingMiddleware(&submitHits))
	limiter.EXPECT().RateLimit(models.ClassLive).Return(countingMiddleware(&liveHits))

	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), WithRouteLimiter(limiter)).Register(r)

	testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/v1/rut/validate", map[string]string{"rut": "123456785"}))
	for range 2 {
		testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/v1/fields/telefono/keystroke", map[string]string{"key": "1"}))
	}

	if submitHits != 1 || liveHits != 2 {
		t.Fatalf("unexpected limiter hits: submit=%d live=%d", submitHits, liveHits)
	}
}
