package sync

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/asisr38/home-gym-tracker-app/internal/localstate"
	"github.com/asisr38/home-gym-tracker-app/internal/models"
	"github.com/asisr38/home-gym-tracker-app/internal/store"
)

// fakeClient records saves and serves a canned remote document.
type fakeClient struct {
	mu         sync.Mutex
	remote     *models.UserData
	fetchGate  chan struct{}
	saves      []models.UserData
	fetchCalls int
}

func (f *fakeClient) Fetch(ctx context.Context) (*models.UserData, error) {
	if f.fetchGate != nil {
		select {
		case <-f.fetchGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.remote == nil {
		return nil, nil
	}
	doc := *f.remote
	return &doc, nil
}

func (f *fakeClient) Save(ctx context.Context, data models.UserData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, data)
	return nil
}

func (f *fakeClient) savedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeClient) lastSave() models.UserData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCoordinator(t *testing.T, client *fakeClient) (*store.Store, *Coordinator) {
	t.Helper()
	local, err := localstate.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { local.Close() })

	s := store.New()
	c := NewCoordinator(s, local, func(token string) Client { return client }, testLogger())
	t.Cleanup(c.Close)
	return s, c
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

// TestBootstrapAdoptsRemote verifies sign-in adopts an existing remote
// document without echoing it back to the server.
func TestBootstrapAdoptsRemote(t *testing.T) {
	remote := store.New().GetUserData()
	remote.Profile.Name = "Remote Name"
	client := &fakeClient{remote: &remote}
	s, c := newTestCoordinator(t, client)

	if err := c.SetUser(&User{ID: "u1", Token: "tok"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	waitFor(t, func() bool { return s.Profile().Name == "Remote Name" },
		"remote document was never adopted")

	time.Sleep(50 * time.Millisecond)
	if n := client.savedCount(); n != 0 {
		t.Errorf("adoption triggered %d pushes, want 0", n)
	}
}

// TestBootstrapSeedsServer verifies sign-in with no remote document uploads
// the local state once.
func TestBootstrapSeedsServer(t *testing.T) {
	client := &fakeClient{}
	_, c := newTestCoordinator(t, client)

	if err := c.SetUser(&User{ID: "u1", Token: "tok"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	waitFor(t, func() bool { return client.savedCount() == 1 },
		"local state was never seeded to the server")
}

// TestStaleBootstrapDiscarded verifies a fetch that completes after the user
// switched accounts never overwrites the new account's state.
func TestStaleBootstrapDiscarded(t *testing.T) {
	remote := store.New().GetUserData()
	remote.Profile.Name = "Stale User"
	gate := make(chan struct{})
	slow := &fakeClient{remote: &remote, fetchGate: gate}
	fast := &fakeClient{}

	local, err := localstate.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { local.Close() })

	clients := map[string]Client{"slow": slow, "fast": fast}
	s := store.New()
	c := NewCoordinator(s, local, func(token string) Client { return clients[token] }, testLogger())
	t.Cleanup(c.Close)

	if err := c.SetUser(&User{ID: "u1", Token: "slow"}); err != nil {
		t.Fatalf("SetUser u1: %v", err)
	}
	if err := c.SetUser(&User{ID: "u2", Token: "fast"}); err != nil {
		t.Fatalf("SetUser u2: %v", err)
	}
	close(gate) // let the first fetch finish late

	waitFor(t, func() bool {
		slow.mu.Lock()
		defer slow.mu.Unlock()
		return slow.fetchCalls == 1
	}, "gated fetch never completed")
	time.Sleep(50 * time.Millisecond)

	if s.Profile().Name == "Stale User" {
		t.Fatal("stale fetch result overwrote the active user's state")
	}
}

// TestFailedLocalLoadDoesNotSuppressPushes verifies a corrupt local blob
// fails the sign-in without leaving the push window closed: later mutations
// still reach the server.
func TestFailedLocalLoadDoesNotSuppressPushes(t *testing.T) {
	dir := t.TempDir()
	local, err := localstate.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { local.Close() })

	raw, err := sql.Open("sqlite", filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatalf("opening state db directly: %v", err)
	}
	_, err = raw.Exec(`INSERT OR REPLACE INTO app_state (identity, version, state) VALUES ('u1', 1, '{broken')`)
	raw.Close()
	if err != nil {
		t.Fatalf("corrupting blob: %v", err)
	}

	client := &fakeClient{}
	s := store.New()
	c := NewCoordinator(s, local, func(token string) Client { return client }, testLogger())
	t.Cleanup(c.Close)

	if err := c.SetUser(&User{ID: "u1", Token: "tok"}); err == nil {
		t.Fatal("SetUser succeeded with a corrupt blob")
	}
	if c.bootstrapping.Load() {
		t.Fatal("failed sign-in left the push window closed")
	}

	s.UpdateWorkoutNotes("day-1", "still syncing")
	waitFor(t, func() bool { return client.savedCount() == 1 },
		"mutation after failed sign-in was never pushed")
}

// TestDebouncedPushCoalesces verifies a burst of mutations lands as a single
// push carrying the final state.
func TestDebouncedPushCoalesces(t *testing.T) {
	remote := store.New().GetUserData()
	client := &fakeClient{remote: &remote}
	s, c := newTestCoordinator(t, client)

	if err := c.SetUser(&User{ID: "u1", Token: "tok"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	waitFor(t, func() bool { return !c.bootstrapping.Load() }, "bootstrap never finished")

	s.UpdateWorkoutNotes("day-1", "first")
	s.UpdateWorkoutNotes("day-1", "second")
	s.UpdateWorkoutNotes("day-1", "final")

	waitFor(t, func() bool { return client.savedCount() == 1 },
		"burst of mutations never pushed")
	time.Sleep(PushDelay + 100*time.Millisecond)
	if n := client.savedCount(); n != 1 {
		t.Fatalf("burst produced %d pushes, want 1", n)
	}
	pushed := client.lastSave()
	if pushed.CurrentPlan[0].Notes != "final" {
		t.Errorf("pushed notes = %q, want final", pushed.CurrentPlan[0].Notes)
	}
}

// TestAnonymousNeverPushes verifies mutations while signed out persist
// locally but never reach the network.
func TestAnonymousNeverPushes(t *testing.T) {
	client := &fakeClient{}
	s, c := newTestCoordinator(t, client)

	s.UpdateWorkoutNotes("day-1", "offline note")
	time.Sleep(PushDelay + 100*time.Millisecond)
	if n := client.savedCount(); n != 0 {
		t.Fatalf("anonymous mutation pushed %d times", n)
	}

	// The note survives a sign-out/sign-in cycle through local persistence.
	if err := c.SetUser(nil); err != nil {
		t.Fatalf("SetUser(nil): %v", err)
	}
	if s.CurrentPlan()[0].Notes != "offline note" {
		t.Error("anonymous state did not persist locally")
	}
}

// TestFlushPushesImmediately verifies Flush bypasses the debounce window.
func TestFlushPushesImmediately(t *testing.T) {
	remote := store.New().GetUserData()
	client := &fakeClient{remote: &remote}
	s, c := newTestCoordinator(t, client)

	if err := c.SetUser(&User{ID: "u1", Token: "tok"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	waitFor(t, func() bool { return !c.bootstrapping.Load() }, "bootstrap never finished")

	s.UpdateWorkoutNotes("day-1", "unsaved")
	c.Flush()
	if client.savedCount() != 1 {
		t.Fatal("Flush did not push immediately")
	}
}

// TestDebouncerReplacesPending verifies only the last triggered function runs.
func TestDebouncerReplacesPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	var mu sync.Mutex
	var got []int
	record := func(n int) func() {
		return func() {
			mu.Lock()
			got = append(got, n)
			mu.Unlock()
		}
	}
	d.Trigger(record(1))
	d.Trigger(record(2))
	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("debouncer ran %v, want [2]", got)
	}
}

// TestDebouncerCancel verifies Cancel drops the pending invocation.
func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	ran := make(chan struct{}, 1)
	d.Trigger(func() { ran <- struct{}{} })
	d.Cancel()
	select {
	case <-ran:
		t.Fatal("canceled invocation ran")
	case <-time.After(150 * time.Millisecond):
	}
}
