package sync

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asisr38/home-gym-tracker-app/internal/localstate"
	"github.com/asisr38/home-gym-tracker-app/internal/models"
	"github.com/asisr38/home-gym-tracker-app/internal/store"
)

// PushDelay is the quiet period between the last local mutation and the push
// to the server. Bursts of edits within the window collapse into one push.
const PushDelay = time.Second

// ClientFactory builds a remote client for a signed-in user's token.
type ClientFactory func(token string) Client

// User identifies a signed-in account to the coordinator.
type User struct {
	ID    string
	Token string
}

// Coordinator wires the store to local persistence and, when a user is signed
// in, to the remote document API. Every committed change is saved locally;
// syncable changes are additionally pushed after the debounce window. On
// sign-in it bootstraps: adopt the remote document if one exists, otherwise
// seed the server with the local state.
type Coordinator struct {
	store   *store.Store
	local   *localstate.DB
	factory ClientFactory
	log     *slog.Logger

	debounce *Debouncer
	cancel   context.CancelFunc
	ctx      context.Context

	// bootstrapping suppresses pushes while a remote document is being
	// adopted, so the adoption itself is not echoed back to the server.
	bootstrapping atomic.Bool

	mu         sync.Mutex
	identity   string
	client     Client
	generation uint64

	unsubscribe func()
}

// NewCoordinator attaches to a store. Close releases the subscription.
func NewCoordinator(s *store.Store, local *localstate.DB, factory ClientFactory, log *slog.Logger) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		store:    s,
		local:    local,
		factory:  factory,
		log:      log,
		debounce: NewDebouncer(PushDelay),
		ctx:      ctx,
		cancel:   cancel,
		identity: localstate.AnonymousIdentity,
	}
	c.unsubscribe = s.Subscribe(c.onChange)
	return c
}

func (c *Coordinator) onChange(change store.Change) {
	c.persist()

	if !change.Syncable() || c.bootstrapping.Load() {
		return
	}
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()
	if client == nil {
		return
	}
	c.debounce.Trigger(func() { c.push(client) })
}

func (c *Coordinator) persist() {
	c.mu.Lock()
	identity := c.identity
	c.mu.Unlock()
	if err := c.local.Save(identity, c.store.State()); err != nil {
		c.log.Error("persisting state", "identity", identity, "error", err)
	}
}

// push uploads the current snapshot. Push failures are logged and dropped:
// the next mutation schedules another attempt.
func (c *Coordinator) push(client Client) {
	data := c.store.GetUserData()
	if err := client.Save(c.ctx, data); err != nil {
		c.log.Warn("pushing user data", "error", err)
	}
}

// SetUser switches the active account. A nil user signs out to the anonymous
// identity. Sign-in loads the local state for the identity, then bootstraps
// against the server in the background. Pushes stay suppressed until the
// bootstrap resolves, so pre-bootstrap state never reaches the server.
func (c *Coordinator) SetUser(user *User) error {
	c.debounce.Cancel()
	c.bootstrapping.Store(true)

	c.mu.Lock()
	c.generation++
	generation := c.generation
	if user == nil {
		c.identity = localstate.AnonymousIdentity
		c.client = nil
	} else {
		c.identity = user.ID
		c.client = c.factory(user.Token)
	}
	identity := c.identity
	client := c.client
	c.mu.Unlock()

	state, found, err := c.local.Load(identity)
	if err != nil {
		// A failed load means no bootstrap happens; the push window must not
		// stay closed or the coordinator would go silent for its lifetime.
		c.bootstrapping.Store(false)
		return err
	}
	if found {
		c.store.Replace(state)
	} else {
		c.store.ResetUserData()
	}

	if client != nil {
		go c.bootstrap(client, generation)
	} else {
		c.bootstrapping.Store(false)
	}
	return nil
}

// bootstrap performs the sign-in fetch. A fetch that completes after the user
// switched again (generation mismatch) is discarded and leaves the newer
// sign-in's bootstrapping window alone.
func (c *Coordinator) bootstrap(client Client, generation uint64) {
	remote, err := client.Fetch(c.ctx)

	c.mu.Lock()
	stale := generation != c.generation
	c.mu.Unlock()
	if stale {
		c.log.Debug("discarding stale bootstrap fetch")
		return
	}
	defer c.bootstrapping.Store(false)

	if err != nil {
		c.log.Warn("bootstrap fetch", "error", err)
		return
	}
	if remote == nil {
		// First sync for this user: seed the server with the local state.
		if err := client.Save(c.ctx, c.store.GetUserData()); err != nil {
			c.log.Warn("seeding remote document", "error", err)
		}
		return
	}

	if err := models.ValidateUserData(remote); err != nil {
		c.log.Warn("remote document failed validation, staying local", "error", err)
		return
	}
	c.store.ApplyUserData(*remote)
}

// Flush pushes any pending syncable state immediately, bypassing the
// debounce window. Used on shutdown.
func (c *Coordinator) Flush() {
	c.debounce.Cancel()
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()
	if client != nil {
		c.push(client)
	}
}

// Close detaches from the store and cancels in-flight requests.
func (c *Coordinator) Close() {
	c.debounce.Cancel()
	c.unsubscribe()
	c.cancel()
}
