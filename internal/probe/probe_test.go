package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api" {
			t.Errorf("path = %q, want /api", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"members":["alice","bob"]}`))
	}))
	defer server.Close()

	data, err := New(server.URL+"/", nil, zap.NewNop()).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if diff := cmp.Diff([]string{"alice", "bob"}, data.Members); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := New(server.URL, nil, zap.NewNop()).Fetch(context.Background()); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestFetchBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	if _, err := New(server.URL, nil, zap.NewNop()).Fetch(context.Background()); err == nil {
		t.Error("expected error for non-JSON body")
	}
}

func TestRunLogsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"members":["alice"]}`))
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.InfoLevel)
	New(server.URL, nil, zap.New(core)).Run(context.Background())

	if n := logs.FilterMessage("status probe").Len(); n != 1 {
		t.Errorf("success logs = %d, want 1", n)
	}
}

func TestRunSwallowsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	unreachable := server.URL
	server.Close()

	core, logs := observer.New(zapcore.InfoLevel)
	p := New(unreachable, nil, zap.New(core))

	// Must neither panic nor return anything to handle.
	p.Run(context.Background())

	if n := logs.FilterMessage("status probe failed").Len(); n != 1 {
		t.Errorf("failure logs = %d, want 1", n)
	}
	if n := logs.FilterMessage("status probe").Len(); n != 0 {
		t.Errorf("success logs = %d, want 0", n)
	}
}
