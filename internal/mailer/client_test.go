package mailer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"campus-clubs/backend/internal/config"
)

func workerConfig(baseURL string) *config.Config {
	return &config.Config{
		EmailWorkerBaseURL: baseURL,
		EmailWorkerAnonKey: "anon-key",
		EmailWorkerSecret:  "shhh",
	}
}

func TestTrigger_SendsCredentials(t *testing.T) {
	var gotAuth, gotSecret, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSecret = r.Header.Get("x-worker-secret")
		gotPath = r.URL.Path
		w.Write([]byte(`{"sent":3}`))
	}))
	defer srv.Close()

	c := NewClient(workerConfig(srv.URL), srv.Client())
	out, err := c.Trigger(context.Background())
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if !out.Success() {
		t.Errorf("status = %d, want 2xx", out.StatusCode)
	}
	if gotAuth != "Bearer anon-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotSecret != "shhh" {
		t.Errorf("x-worker-secret = %q", gotSecret)
	}
	if gotPath != "/functions/v1/send-emails" {
		t.Errorf("path = %q", gotPath)
	}
	if string(out.Body) != `{"sent":3}` {
		t.Errorf("body = %q", out.Body)
	}
}

func TestTrigger_MissingConfigSkipsNetwork(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	cases := []*config.Config{
		{EmailWorkerAnonKey: "k", EmailWorkerSecret: "s"},
		{EmailWorkerBaseURL: srv.URL, EmailWorkerSecret: "s"},
		{EmailWorkerBaseURL: srv.URL, EmailWorkerAnonKey: "k"},
	}
	for i, cfg := range cases {
		c := NewClient(cfg, srv.Client())
		_, err := c.Trigger(context.Background())
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("case %d: err = %v, want ErrNotConfigured", i, err)
		}
	}
	if calls.Load() != 0 {
		t.Errorf("outbound calls = %d, want 0", calls.Load())
	}
}

func TestTrigger_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately: connections will be refused

	c := NewClient(workerConfig(srv.URL), nil)
	out, err := c.Trigger(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if errors.Is(err, ErrNotConfigured) {
		t.Fatal("transport error must not be ErrNotConfigured")
	}
	if out != nil {
		t.Errorf("outcome = %+v, want nil", out)
	}
}

func TestTrigger_NonSuccessStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("nope"))
	}))
	defer srv.Close()

	c := NewClient(workerConfig(srv.URL), srv.Client())
	out, err := c.Trigger(context.Background())
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if out.Success() {
		t.Error("403 should not be Success")
	}
	if out.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", out.StatusCode)
	}
}
