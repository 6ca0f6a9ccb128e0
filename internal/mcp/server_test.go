package mcp

import (
	"context"
	"testing"

	"github.com/asisr38/home-gym-tracker-app/internal/store"
)

// TestParseFlexTime verifies both accepted date formats and rejection of
// garbage.
func TestParseFlexTime(t *testing.T) {
	got, err := parseFlexTime("2026-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2026 || got.Month() != 3 || got.Day() != 1 {
		t.Errorf("parsed = %v, want 2026-03-01", got)
	}

	got, err = parseFlexTime("2026-03-01T10:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 10 || got.Minute() != 30 {
		t.Errorf("parsed = %v, want 10:30", got)
	}

	if _, err := parseFlexTime("not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestStoreSource verifies the in-process source serves the engine's current
// document.
func TestStoreSource(t *testing.T) {
	s := store.New()
	src := &StoreSource{Store: s}

	data, err := src.UserData(context.Background())
	if err != nil {
		t.Fatalf("UserData: %v", err)
	}
	if len(data.CurrentPlan) != 7 {
		t.Errorf("plan days = %d, want 7", len(data.CurrentPlan))
	}

	empty := &StoreSource{}
	if _, err := empty.UserData(context.Background()); err == nil {
		t.Error("expected error from a source with no store")
	}
}
