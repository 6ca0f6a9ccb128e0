package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asisr38/home-gym-tracker-app/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSyncRejectsInvalidRemoteDocument verifies the one-shot sync refuses a
// remote document that fails domain validation: exit code 1 and the engine
// left untouched.
func TestSyncRejectsInvalidRemoteDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"schemaVersion":2,"profile":{"units":"furlongs"},"history":[],"currentPlan":[]}`))
	}))
	defer srv.Close()

	engine := store.New()
	before := engine.Profile()

	if code := cmdSync(engine, testLogger(), opts{serverURL: srv.URL, token: "tok"}); code != 1 {
		t.Fatalf("sync exit code = %d, want 1", code)
	}
	after := engine.Profile()
	if after.Units != before.Units || after.Name != before.Name {
		t.Error("invalid remote document mutated the engine")
	}
}

// TestSyncAdoptsValidRemoteDocument verifies the one-shot sync adopts a valid
// remote document.
func TestSyncAdoptsValidRemoteDocument(t *testing.T) {
	remote := store.New().GetUserData()
	remote.Profile.Name = "Remote Name"
	body, err := json.Marshal(remote)
	if err != nil {
		t.Fatalf("encoding document: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer srv.Close()

	engine := store.New()
	if code := cmdSync(engine, testLogger(), opts{serverURL: srv.URL, token: "tok"}); code != 0 {
		t.Fatalf("sync exit code = %d, want 0", code)
	}
	if got := engine.Profile().Name; got != "Remote Name" {
		t.Errorf("profile name = %q, want Remote Name", got)
	}
}
