package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_PostJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test", r.Header.Get("X-Client"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	client, err := NewInstrumentedClient(
		WithBaseURL(ts.URL),
		WithHeaders(map[string]string{"X-Client": "test"}),
	)
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	resp, err := client.NewRequest().
		SetBody(map[string]int{"x1": 90}).
		SetResult(&out).
		Post(context.Background(), "api/v1/echo")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, out.OK)
}

func TestRequest_ErrorHandler(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad input", http.StatusBadRequest)
	}))
	defer ts.Close()

	client, err := NewInstrumentedClient(WithBaseURL(ts.URL))
	require.NoError(t, err)

	handled := errors.New("handled")
	resp, err := client.NewRequestWithOptions(
		WithResponseErrorHandler(func(status int, body []byte) error {
			if status >= 400 {
				return fmt.Errorf("%w: %d", handled, status)
			}
			return nil
		}),
	).Get(context.Background(), "/")

	require.ErrorIs(t, err, handled)
	require.NotNil(t, resp)
	assert.True(t, resp.IsError())
	assert.Contains(t, string(resp.Body()), "bad input")
}

func TestRequest_BreakerOpensOnServerErrors(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	settings := DefaultBreakerSettings("test")
	settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 2
	}
	client, err := NewInstrumentedClient(WithBaseURL(ts.URL), WithBreaker(settings))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp, err := client.NewRequest().Get(context.Background(), "/")
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	}
	assert.Equal(t, gobreaker.StateOpen, client.BreakerState())

	_, err = client.NewRequest().Get(context.Background(), "/")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, calls)
}

func TestRequest_ClientErrorsDoNotTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	settings := DefaultBreakerSettings("test")
	settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 1
	}
	client, err := NewInstrumentedClient(WithBaseURL(ts.URL), WithBreaker(settings))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := client.NewRequest().Get(context.Background(), "/")
		require.NoError(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, client.BreakerState())
}
