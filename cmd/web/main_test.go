package main

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/cosmicdefender/internal/highscore"
)

type fakeRecorder struct {
	rec highscore.Record
	err error
}

func (f fakeRecorder) Record() (highscore.Record, error) { return f.rec, f.err }

func TestHandler(t *testing.T) {
	tests := []struct {
		name   string
		port   string
		scores fakeRecorder
		want   []string
	}{
		{
			name:   "with record",
			port:   "2222",
			scores: fakeRecorder{rec: highscore.Record{Score: 4200, Achieved: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}},
			want:   []string{"ssh -t -p 2222 play.example.com", "High Score: 4200", "2026-03-01"},
		},
		{
			name:   "no record",
			scores: fakeRecorder{},
			want:   []string{"ssh -t play.example.com", "High Score: 0"},
		},
		{
			name:   "store error",
			scores: fakeRecorder{err: errors.New("broken")},
			want:   []string{"High Score: 0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(log.New(io.Discard), "play.example.com", tt.port, tt.scores)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			if rr.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rr.Code)
			}
			body := rr.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("expected %q in page", w)
				}
			}
		})
	}
}

func TestHandlerNotFound(t *testing.T) {
	h := newHandler(log.New(io.Discard), "host", "", fakeRecorder{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}
