package archive

import (
	"fmt"
	"sync"

	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// Global store instance for main logic.
var (
	manager struct {
		sync.Mutex
		store contract.ArchiveStore
	}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global archive store. An empty backend
// disables archiving entirely.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" {
			return
		}
		store, err := NewArchiveStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize archive store: %w", err)
			return
		}

		manager.Lock()
		defer manager.Unlock()
		manager.store = store
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// Store returns the global archive store, or nil when archiving is
// disabled or not yet initialized.
func Store() contract.ArchiveStore {
	manager.Lock()
	defer manager.Unlock()
	return manager.store
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		manager.Lock()
		defer manager.Unlock()
		if manager.store != nil {
			_ = manager.store.Close()
		}
	})
}
