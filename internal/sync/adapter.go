package sync

import (
	gosync "sync"
	"time"

	"github.com/existflow/gridplan/internal/logger"
	"github.com/existflow/gridplan/internal/store"
)

// Adapter mirrors store mutations to the sync server and applies remote
// changes back, wholesale. Local mutations are optimistic: the store is
// already updated when the push happens, and a failed push rolls the
// store back to the last state the server confirmed. Remote changes
// overwrite local state with no conflict resolution; this is a
// single-user planner and the last write observed wins.
type Adapter struct {
	client *Client
	store  *store.Store

	debounceTime time.Duration
	pollInterval time.Duration

	mu       gosync.Mutex
	pending  bool
	applying bool // true while a pull or rollback is being written into the store
	// lastSynced is the newest snapshot known to match the server. It is
	// captured at Start and refreshed after every successful push or pull;
	// a rejected push restores the store to it.
	lastSynced *store.State

	stopCh chan struct{}
	unsub  func()
	onPull func()
}

// NewAdapter wires a client to a store. Call Start to begin mirroring.
func NewAdapter(client *Client, st *store.Store) *Adapter {
	return &Adapter{
		client:       client,
		store:        st,
		debounceTime: 5 * time.Second,
		pollInterval: 30 * time.Second,
		stopCh:       make(chan struct{}),
	}
}

// SetOnPull registers a callback invoked after remote changes are applied.
func (a *Adapter) SetOnPull(callback func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onPull = callback
}

// Start subscribes to the store and begins the background poll loop.
func (a *Adapter) Start() {
	snap := a.store.Snapshot()
	a.mu.Lock()
	a.lastSynced = &snap
	a.mu.Unlock()

	a.unsub = a.store.Subscribe(a.onChange)
	go a.pollLoop()
}

// Stop unsubscribes and halts the poll loop.
func (a *Adapter) Stop() {
	if a.unsub != nil {
		a.unsub()
	}
	close(a.stopCh)
}

func (a *Adapter) onChange() {
	if !a.client.IsLoggedIn() {
		return
	}

	a.mu.Lock()
	if a.applying || a.pending {
		a.mu.Unlock()
		return
	}
	a.pending = true
	a.mu.Unlock()

	go a.debouncedPush()
}

func (a *Adapter) debouncedPush() {
	timer := time.NewTimer(a.debounceTime)
	defer timer.Stop()

	select {
	case <-timer.C:
		a.performPush()
	case <-a.stopCh:
	}
}

func (a *Adapter) performPush() {
	a.mu.Lock()
	a.pending = false
	a.mu.Unlock()

	snap := a.store.Snapshot()
	if _, err := a.client.Push(snap); err != nil {
		logger.Error("Sync push failed, rolling back local state", logger.F("error", err))
		a.mu.Lock()
		pre := a.lastSynced
		a.mu.Unlock()
		if pre != nil {
			a.applyRemote(func() { a.store.Restore(*pre) })
		}
		return
	}

	a.mu.Lock()
	a.lastSynced = &snap
	a.mu.Unlock()
}

// PushNowIfPending flushes a scheduled push immediately. Used on shutdown.
func (a *Adapter) PushNowIfPending() error {
	a.mu.Lock()
	wasPending := a.pending
	a.pending = false
	a.mu.Unlock()

	if !wasPending {
		return nil
	}

	snap := a.store.Snapshot()
	if _, err := a.client.Push(snap); err != nil {
		return err
	}
	a.mu.Lock()
	a.lastSynced = &snap
	a.mu.Unlock()
	return nil
}

func (a *Adapter) pollLoop() {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if a.client.IsLoggedIn() {
				a.pullRemote()
			}
		case <-a.stopCh:
			return
		}
	}
}

func (a *Adapter) pullRemote() {
	projects, items, version, err := a.client.Pull()
	if err != nil {
		// The previous local snapshot stays authoritative.
		return
	}
	if version <= a.client.LastVersion() {
		return
	}

	a.applyRemote(func() {
		a.store.ReplaceProjects(projects)
		a.store.ReplaceItems(items)
	})
	a.client.setLastVersion(version)

	snap := a.store.Snapshot()
	a.mu.Lock()
	a.lastSynced = &snap
	callback := a.onPull
	a.mu.Unlock()
	if callback != nil {
		callback()
	}
}

// applyRemote runs a store write without scheduling it back to the server.
func (a *Adapter) applyRemote(fn func()) {
	a.mu.Lock()
	a.applying = true
	a.mu.Unlock()
	fn()
	a.mu.Lock()
	a.applying = false
	a.mu.Unlock()
}
