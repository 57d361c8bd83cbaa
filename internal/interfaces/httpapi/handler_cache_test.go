package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordingInvalidator struct {
	prefixes []string
}

func (r *recordingInvalidator) DeletePrefix(ctx context.Context, prefix string) {
	r.prefixes = append(r.prefixes, prefix)
}

type stubReadiness struct {
	err error
}

func (s *stubReadiness) PingContext(ctx context.Context) error { return s.err }

func TestRevalidateCache_DropsPrefix(t *testing.T) {
	t.Parallel()

	invalidator := &recordingInvalidator{}
	handler := NewHandler(nil, nil, nil, invalidator, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/cache/revalidations", strings.NewReader(`{"prefix":"games:"}`))
	rec := httptest.NewRecorder()
	handler.RevalidateCache(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(invalidator.prefixes) != 1 || invalidator.prefixes[0] != "games:" {
		t.Fatalf("expected games: prefix to be dropped, got %v", invalidator.prefixes)
	}
}

func TestRevalidateCache_MissingPrefix(t *testing.T) {
	t.Parallel()

	handler := NewHandler(nil, nil, nil, &recordingInvalidator{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/cache/revalidations", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.RevalidateCache(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReadyz_ReportsReady(t *testing.T) {
	t.Parallel()

	handler := NewHandler(nil, nil, nil, nil, &stubReadiness{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.Readyz(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReadyz_DatabaseDown(t *testing.T) {
	t.Parallel()

	handler := NewHandler(nil, nil, nil, nil, &stubReadiness{err: errors.New("connection refused")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.Readyz(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d: %s", rec.Code, rec.Body.String())
	}
}
