package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessorsOnEmptyContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, ClientIP(ctx))
	assert.Empty(t, UserAgent(ctx))
	assert.Equal(t, DeviceInfo{}, Device(ctx))
	assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)
}

func TestRoundTrip(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := WithRequestID(context.Background(), "req-42")
	ctx = WithClientMetadata(ctx, "10.0.0.1", "curl/8.0")
	ctx = WithDevice(ctx, DeviceInfo{Browser: "Firefox", OS: "Linux", Mobile: false})
	ctx = WithTime(ctx, fixed)

	assert.Equal(t, "req-42", RequestID(ctx))
	assert.Equal(t, "10.0.0.1", ClientIP(ctx))
	assert.Equal(t, "curl/8.0", UserAgent(ctx))
	assert.Equal(t, "Firefox", Device(ctx).Browser)
	assert.Equal(t, fixed, Now(ctx))
}
