package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// makeLoggedRequest builds a request whose context carries a zerolog logger
// writing into buf, the same way withTraceID installs one.
func makeLoggedRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	l := zerolog.New(buf).With().Timestamp().Logger()
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		path             string
		handlerStatus    int
		handlerResponse  string
		checkLogContains []string
	}{
		{
			name:            "status read logs 200 and size",
			method:          http.MethodGet,
			path:            "/api/v1/sync/status",
			handlerStatus:   http.StatusOK,
			handlerResponse: `{"state":"IDLE"}`,
			checkLogContains: []string{
				`"method":"GET"`,
				`"uri":"/api/v1/sync/status"`,
				`"status":200`,
				`"duration":`,
				`"size":16`,
			},
		},
		{
			name:            "queue enqueue logs 201",
			method:          http.MethodPost,
			path:            "/api/v1/sync/queue",
			handlerStatus:   http.StatusCreated,
			handlerResponse: `{"id":10}`,
			checkLogContains: []string{
				`"method":"POST"`,
				`"uri":"/api/v1/sync/queue"`,
				`"status":201`,
			},
		},
		{
			name:          "queue delete logs 204 with zero size",
			method:        http.MethodDelete,
			path:          "/api/v1/sync/queue/10",
			handlerStatus: http.StatusNoContent,
			checkLogContains: []string{
				`"method":"DELETE"`,
				`"uri":"/api/v1/sync/queue/10"`,
				`"status":204`,
				`"size":0`,
			},
		},
		{
			name:            "rejected session logs 409",
			method:          http.MethodPost,
			path:            "/api/v1/sync/session",
			handlerStatus:   http.StatusConflict,
			handlerResponse: "sync session already in progress",
			checkLogContains: []string{
				`"status":409`,
			},
		},
		{
			name:            "missing conflict logs 404",
			method:          http.MethodGet,
			path:            "/api/v1/sync/conflicts/missing",
			handlerStatus:   http.StatusNotFound,
			handlerResponse: "error getting conflict",
			checkLogContains: []string{
				`"status":404`,
				`"uri":"/api/v1/sync/conflicts/missing"`,
			},
		},
		{
			name:            "query parameters preserved in uri",
			method:          http.MethodGet,
			path:            "/api/v1/sync/conflicts?status=PENDING&limit=10",
			handlerStatus:   http.StatusOK,
			handlerResponse: `{"length":0}`,
			checkLogContains: []string{
				`"uri":"/api/v1/sync/conflicts?status=PENDING&limit=10"`,
				`"status":200`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
				if tt.handlerResponse != "" {
					_, _ = w.Write([]byte(tt.handlerResponse))
				}
			})

			h := newTestHandler()
			middleware := h.withLogging(next)

			req := makeLoggedRequest(tt.method, tt.path, &logBuf)
			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, req)

			assert.Equal(t, tt.handlerStatus, rr.Code)

			logOutput := logBuf.String()
			assert.NotEmpty(t, logOutput, "request should be logged")

			for _, expected := range tt.checkLogContains {
				assert.Contains(t, logOutput, expected, "log should contain: %s", expected)
			}
		})
	}
}

func TestWithLogging_ResponseSize(t *testing.T) {
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(strings.Repeat("a", 1024)))
	})

	h := newTestHandler()
	req := makeLoggedRequest(http.MethodGet, "/api/v1/sync/status", &logBuf)
	rr := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rr, req)

	assert.Contains(t, logBuf.String(), `"size":1024`)
}

func TestWithLogging_NoStatusWritten(t *testing.T) {
	var logBuf bytes.Buffer

	// Implicit 200: the handler writes a body without calling WriteHeader.
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"state":"IDLE"}`))
	})

	h := newTestHandler()
	req := makeLoggedRequest(http.MethodGet, "/api/v1/sync/status", &logBuf)
	rr := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, logBuf.String(), `"status":200`)
}

func TestWithLogging_ConcurrentRequests(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := newTestHandler()
	middleware := h.withLogging(next)

	const n = 50
	done := make(chan struct{}, n)

	for i := 0; i < n; i++ {
		go func() {
			var buf bytes.Buffer
			req := makeLoggedRequest(http.MethodGet, "/api/v1/sync/status", &buf)
			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, buf.String(), `"status":200`)
			done <- struct{}{}
		}()
	}

	for i := 0; i < n; i++ {
		<-done
	}
}

func TestWithLogging_DurationObserved(t *testing.T) {
	delay := 50 * time.Millisecond
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.WriteHeader(http.StatusOK)
	})

	h := newTestHandler()
	req := makeLoggedRequest(http.MethodPost, "/api/v1/sync/session", &logBuf)
	rr := httptest.NewRecorder()

	start := time.Now()
	h.withLogging(next).ServeHTTP(rr, req)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, delay)
	assert.Contains(t, logBuf.String(), `"duration":`)
}

func TestWithLogging_PanicNotSuppressed(t *testing.T) {
	// Recovery belongs to chi's Recoverer, installed above this middleware.
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	h := newTestHandler()
	var logBuf bytes.Buffer
	req := makeLoggedRequest(http.MethodGet, "/api/v1/sync/status", &logBuf)
	rr := httptest.NewRecorder()

	assert.Panics(t, func() {
		h.withLogging(next).ServeHTTP(rr, req)
	})
}

func TestWithLogging_NopLogger(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := newTestHandler()

	nop := logger.Nop()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil)
	req = req.WithContext(nop.Logger.WithContext(req.Context()))

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.withLogging(next).ServeHTTP(rr, req)
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}
