package blockliststore

import (
	"errors"
	"testing"

	"github.com/dalemusser/clubhub/internal/testutil"
)

func TestBlockUnblockRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "spam@club.edu"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err := store.Exists(ctx, "SPAM@club.edu")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatal("blocked email should be found case-insensitively")
	}

	deleted, err := store.Delete(ctx, "spam@club.edu")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	exists, err = store.Exists(ctx, "spam@club.edu")
	if err != nil {
		t.Fatalf("Exists after delete: %v", err)
	}
	if exists {
		t.Error("email should no longer be blocked")
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateBlockedEmail(ctx, "spam@club.edu")

	_, err := store.Create(ctx, "spam@club.edu")
	if !errors.Is(err, ErrAlreadyBlocked) {
		t.Errorf("duplicate Create = %v, want ErrAlreadyBlocked", err)
	}
}
