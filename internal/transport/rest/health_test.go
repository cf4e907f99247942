package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type checkerMock struct {
	err error
}

func (m *checkerMock) Check(_ context.Context) error {
	return m.err
}

func checks(dictErr error) map[string]Checker {
	return map[string]Checker{
		"dictionary": &checkerMock{err: dictErr},
		"quiz_bank":  CheckFunc(func(context.Context) error { return nil }),
	}
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(checks(nil), "test-version")

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}

	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady_ComponentsUp(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(checks(nil), "test-version")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
}

func TestReady_DictionaryDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(checks(errors.New("dictionary source unavailable")), "test-version")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}
}

func TestHealth_AllOK(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(checks(nil), "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}

	if resp.Version != "v1.0.0" {
		t.Errorf("expected version 'v1.0.0', got %q", resp.Version)
	}

	dictComp, ok := resp.Components["dictionary"]
	if !ok {
		t.Fatal("expected 'dictionary' component in response")
	}

	if dictComp.Status != "ok" {
		t.Errorf("expected dictionary status 'ok', got %q", dictComp.Status)
	}
}

func TestHealth_DictionaryDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(checks(errors.New("dictionary source unavailable")), "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}

	dictComp, ok := resp.Components["dictionary"]
	if !ok {
		t.Fatal("expected 'dictionary' component in response")
	}

	if dictComp.Status != "down" {
		t.Errorf("expected dictionary status 'down', got %q", dictComp.Status)
	}
}

func TestHealth_IncludesLatency(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(checks(nil), "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	dictComp, ok := resp.Components["dictionary"]
	if !ok {
		t.Fatal("expected 'dictionary' component in response")
	}

	if dictComp.Latency == "" {
		t.Error("expected non-empty latency for dictionary component")
	}
}

func TestHealth_ReportsEveryComponent(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(checks(errors.New("down")), "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if got := resp.Components["quiz_bank"].Status; got != "ok" {
		t.Errorf("expected quiz_bank status 'ok', got %q", got)
	}
	if got := resp.Components["dictionary"].Status; got != "down" {
		t.Errorf("expected dictionary status 'down', got %q", got)
	}
}
