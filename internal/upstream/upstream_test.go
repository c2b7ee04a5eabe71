package upstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/upstream"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) ObserveUpstream(name, outcome string) {
	m.Called(name, outcome)
}

func TestClient_GetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		assert.Equal(t, "Paris", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte(`{"value": 42}`))
	}))
	defer ts.Close()

	rec := new(mockRecorder)
	rec.On("ObserveUpstream", "test", config.OutcomeOK).Once()

	c := upstream.New("test", upstream.WithRecorder(rec))
	var out struct {
		Value int `json:"value"`
	}
	err := c.GetJSON(context.Background(), ts.URL, url.Values{"name": {"Paris"}}, &out)

	require.NoError(t, err)
	assert.Equal(t, 42, out.Value)
	rec.AssertExpectations(t)
}

func TestClient_PostJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get(config.HeaderContentType))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["message"])
		_, _ = w.Write([]byte("OK"))
	}))
	defer ts.Close()

	c := upstream.New("test")
	err := c.PostJSON(context.Background(), ts.URL, map[string]string{"message": "hello"}, nil)
	assert.NoError(t, err)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name:    "ServerError",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			wantErr: "500",
		},
		{
			name:    "Forbidden",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusForbidden) },
			wantErr: "403",
		},
		{
			name:    "BadJSON",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("{not json")) },
			wantErr: config.ErrUpstreamDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			rec := new(mockRecorder)
			rec.On("ObserveUpstream", "test", config.OutcomeError).Once()

			var out map[string]any
			err := upstream.New("test", upstream.WithRecorder(rec)).GetJSON(context.Background(), ts.URL, nil, &out)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			rec.AssertExpectations(t)
		})
	}
}

func TestClient_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	err := upstream.New("test").GetJSON(context.Background(), ts.URL, nil, nil)

	var se *upstream.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Code)
}

func TestClient_RejectsBadURLs(t *testing.T) {
	c := upstream.New("test")

	err := c.GetJSON(context.Background(), "ftp://example.com/file", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrProtocol)

	err = c.GetJSON(context.Background(), "http://[::1", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrInvalidURL)
}

func TestClient_BreakerOpens(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	rec := new(mockRecorder)
	rec.On("ObserveUpstream", "test", config.OutcomeError).Times(config.BreakerMinRequests)
	rec.On("ObserveUpstream", "test", config.OutcomeRejected).Once()

	c := upstream.New("test", upstream.WithRecorder(rec))
	for range config.BreakerMinRequests {
		require.Error(t, c.GetJSON(context.Background(), ts.URL, nil, nil))
	}
	assert.Equal(t, gobreaker.StateOpen, c.State())

	err := c.GetJSON(context.Background(), ts.URL, nil, nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(config.BreakerMinRequests), hits.Load(), "an open breaker must not reach the server")
	rec.AssertExpectations(t)
}

func TestClient_CancelledContextDoesNotTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := upstream.New("test")
	for range config.BreakerMinRequests + 1 {
		assert.Error(t, c.GetJSON(ctx, ts.URL, nil, nil))
	}
	assert.Equal(t, gobreaker.StateClosed, c.State())
}
