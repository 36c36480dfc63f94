package service_test

import (
	"testing"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/testutil"
)

func TestAdminService_GetStats(t *testing.T) {
	t.Run("empty store reports zeros", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		stats, err := svcs.Admin.GetStats(t.Context())

		if err != nil {
			t.Fatalf("GetStats() returned unexpected error: %v", err)
		}
		if stats.ActiveSessions != 0 || stats.TransactionCollections != 0 {
			t.Errorf("Expected zero stats, got %+v", stats)
		}
	})

	t.Run("counts sessions and collections", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		alice := testutil.LoginAs(t, svcs.Sessions, testutil.MakeEmail("alice"))
		testutil.LoginAs(t, svcs.Sessions, testutil.MakeEmail("bob"))
		testutil.LoginAs(t, svcs.Sessions, testutil.TestAdminEmail)
		if _, err := svcs.Transactions.CreateTransaction(t.Context(), alice.Identity.ID, testutil.NewTransaction().Request()); err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		stats, err := svcs.Admin.GetStats(t.Context())

		if err != nil {
			t.Fatalf("GetStats() returned unexpected error: %v", err)
		}
		if stats.ActiveSessions != 3 {
			t.Errorf("Expected 3 sessions, got %d", stats.ActiveSessions)
		}
		if stats.TransactionCollections != 1 {
			t.Errorf("Expected 1 collection, got %d", stats.TransactionCollections)
		}
	})
}
