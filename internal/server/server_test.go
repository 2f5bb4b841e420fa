package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ivanoskov/smartbalance_bot/internal/log"
)

type recorder struct {
	bodies []string
	err    error
}

func (r *recorder) HandleWebhook(_ context.Context, body []byte) error {
	r.bodies = append(r.bodies, string(body))
	return r.err
}

func TestWebhook(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		handlerErr error
		wantStatus int
		wantCalls  int
	}{
		{"valid token", http.MethodPost, "/webhook/secret", nil, http.StatusOK, 1},
		{"handler error still 200", http.MethodPost, "/webhook/secret", errors.New("boom"), http.StatusOK, 1},
		{"wrong token", http.MethodPost, "/webhook/other", nil, http.StatusNotFound, 0},
		{"wrong method", http.MethodGet, "/webhook/secret", nil, http.StatusMethodNotAllowed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{err: tt.handlerErr}
			srv := New(":0", "secret", rec, log.Nop())

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{"update_id":1}`))
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if len(rec.bodies) != tt.wantCalls {
				t.Fatalf("handler calls = %d, want %d", len(rec.bodies), tt.wantCalls)
			}
			if tt.wantCalls == 1 && rec.bodies[0] != `{"update_id":1}` {
				t.Errorf("body = %q", rec.bodies[0])
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := New(":0", "secret", &recorder{}, log.Nop())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", w.Code, w.Body.String())
	}
}
