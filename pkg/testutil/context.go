package testutil

import (
	"net/http"

	"rutcheck/pkg/requestcontext"
)

// WithRequestID stamps a request ID onto the request context, as the
// RequestID middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithMobileDevice marks the request as coming from a touch device.
func WithMobileDevice(req *http.Request) *http.Request {
	ctx := requestcontext.WithDevice(req.Context(), requestcontext.DeviceInfo{
		Browser: "Mobile Safari",
		OS:      "iOS",
		Mobile:  true,
	})
	return req.WithContext(ctx)
}
