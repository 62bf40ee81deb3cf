package testsupport

import (
	"testing"

	"vcfimport/internal/config"
	"vcfimport/internal/contactstore"
)

// MustOpenStore opens the config's contact store and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *contactstore.Store {
	t.Helper()

	store, err := contactstore.Open(cfg.Store.Path)
	if err != nil {
		t.Fatalf("contactstore.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
