package testutil

import (
	"testing"

	"github.com/mtran/wellness-backend/internal/store"
)

// NewTestStore opens an in-memory SQLiteStore with all migrations
// applied and closes it when the test completes. Each call gets its own
// database, so cascade behavior between a daily log and its check-in,
// journal, chatbot, and tracker rows is exercised for real rather than
// against shared state.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
