package teamstore

import (
	"errors"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/hierarchy"
	"github.com/dalemusser/clubhub/internal/testutil"
)

func TestCreateRejectsDuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "Segfault Squad"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Case-insensitive duplicate, caught by the unique name_ci index.
	_, err := store.Create(ctx, "SEGFAULT squad")
	if !errors.Is(err, ErrDuplicateTeam) {
		t.Errorf("Create with duplicate name = %v, want ErrDuplicateTeam", err)
	}
}

func TestAddAndRemoveMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	team := f.CreateTeam(ctx, "Heap Hackers")
	u := f.CreateUser(ctx, "Linus", "linus@club.edu", hierarchy.RoleMember)

	if err := store.AddMember(ctx, team.ID, u.ID); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	got, err := store.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0] != u.ID {
		t.Fatalf("members = %v, want [%s]", got.Members, u.ID.Hex())
	}

	if err := store.RemoveMember(ctx, team.ID, u.ID); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	got, err = store.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("GetByID after remove: %v", err)
	}
	if len(got.Members) != 0 {
		t.Errorf("members after remove = %v, want empty", got.Members)
	}
}

func TestListOrdersByTotalSolved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	low := f.CreateTeam(ctx, "Bronze Bits")
	high := f.CreateTeam(ctx, "Alpha Array")

	if err := store.SetTotalSolved(ctx, low.ID, 10); err != nil {
		t.Fatalf("SetTotalSolved: %v", err)
	}
	if err := store.SetTotalSolved(ctx, high.ID, 99); err != nil {
		t.Fatalf("SetTotalSolved: %v", err)
	}

	teams, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("got %d teams, want 2", len(teams))
	}
	if teams[0].TeamName != "Alpha Array" || teams[1].TeamName != "Bronze Bits" {
		t.Errorf("order = [%s %s], want best total first", teams[0].TeamName, teams[1].TeamName)
	}
}
