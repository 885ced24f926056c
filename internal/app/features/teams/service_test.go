// internal/app/features/teams/service_test.go
package teams

import (
	"context"
	"testing"

	teamstore "github.com/dalemusser/clubhub/internal/app/store/teams"
	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeTeams struct {
	teams map[primitive.ObjectID]*models.Team
}

func (f *fakeTeams) Create(_ context.Context, teamName string) (models.Team, error) {
	for _, t := range f.teams {
		if t.TeamName == teamName {
			return models.Team{}, teamstore.ErrDuplicateTeam
		}
	}
	if f.teams == nil {
		f.teams = map[primitive.ObjectID]*models.Team{}
	}
	team := models.Team{
		ID:       primitive.NewObjectID(),
		TeamName: teamName,
		Members:  []primitive.ObjectID{},
	}
	f.teams[team.ID] = &team
	return team, nil
}

func (f *fakeTeams) GetByID(_ context.Context, id primitive.ObjectID) (*models.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *t
	cp.Members = append([]primitive.ObjectID(nil), t.Members...)
	return &cp, nil
}

func (f *fakeTeams) UpdateName(_ context.Context, id primitive.ObjectID, teamName string) error {
	for other, t := range f.teams {
		if other != id && t.TeamName == teamName {
			return teamstore.ErrDuplicateTeam
		}
	}
	f.teams[id].TeamName = teamName
	return nil
}

func (f *fakeTeams) AddMember(_ context.Context, id, userID primitive.ObjectID) error {
	t := f.teams[id]
	for _, m := range t.Members {
		if m == userID {
			return nil
		}
	}
	t.Members = append(t.Members, userID)
	return nil
}

func (f *fakeTeams) RemoveMember(_ context.Context, id, userID primitive.ObjectID) error {
	t := f.teams[id]
	for i, m := range t.Members {
		if m == userID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeTeams) SetTotalSolved(_ context.Context, id primitive.ObjectID, total int) error {
	f.teams[id].TotalQuestionsSolved = total
	return nil
}

func (f *fakeTeams) List(_ context.Context) ([]models.Team, error) {
	var out []models.Team
	for _, t := range f.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTeams) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := f.teams[id]; !ok {
		return 0, nil
	}
	delete(f.teams, id)
	return 1, nil
}

type fakeMembers struct {
	users map[primitive.ObjectID]*models.User
}

func (f *fakeMembers) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (f *fakeMembers) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeMembers) SetTeam(_ context.Context, id primitive.ObjectID, teamID *primitive.ObjectID) error {
	f.users[id].TeamID = teamID
	return nil
}

func (f *fakeMembers) ClearTeamRefs(_ context.Context, teamID primitive.ObjectID) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			u.TeamID = nil
			n++
		}
	}
	return n, nil
}

type fakeSettings struct {
	teamSize int
}

func (f *fakeSettings) Get(_ context.Context) (models.ClubSettings, error) {
	size := f.teamSize
	if size < 1 {
		size = models.DefaultTeamSize
	}
	return models.ClubSettings{TeamSize: size}, nil
}

func (f *fakeSettings) SetTeamSize(_ context.Context, teamSize int, _ primitive.ObjectID, _ string) error {
	f.teamSize = teamSize
	return nil
}

func newTestService(teams *fakeTeams, users *fakeMembers, settings *fakeSettings) *Service {
	if teams == nil {
		teams = &fakeTeams{}
	}
	if users == nil {
		users = &fakeMembers{users: map[primitive.ObjectID]*models.User{}}
	}
	if settings == nil {
		settings = &fakeSettings{}
	}
	return NewService(teams, users, settings, zap.NewNop())
}

func seedUser(users *fakeMembers, solved int) primitive.ObjectID {
	id := primitive.NewObjectID()
	users.users[id] = &models.User{ID: id, SolvedQuestionsCount: solved}
	return id
}

func TestCreateDuplicateName(t *testing.T) {
	teams := &fakeTeams{}
	svc := newTestService(teams, nil, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Alpha"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, "Alpha")
	if apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("want Conflict, got %v", err)
	}
}

func TestAddMemberSyncsAggregate(t *testing.T) {
	teams := &fakeTeams{}
	users := &fakeMembers{users: map[primitive.ObjectID]*models.User{}}
	svc := newTestService(teams, users, nil)
	ctx := context.Background()

	team, _ := svc.Create(ctx, "Alpha")
	u := seedUser(users, 7)

	if err := svc.AddMember(ctx, team.ID, u); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	got := teams.teams[team.ID]
	if len(got.Members) != 1 || got.Members[0] != u {
		t.Fatalf("members = %v, want [%s]", got.Members, u.Hex())
	}
	if users.users[u].TeamID == nil || *users.users[u].TeamID != team.ID {
		t.Fatal("user's team reference not set")
	}
	if got.TotalQuestionsSolved != 7 {
		t.Fatalf("total solved = %d, want 7", got.TotalQuestionsSolved)
	}
}

func TestAddMemberAlreadyOnTeam(t *testing.T) {
	teams := &fakeTeams{}
	users := &fakeMembers{users: map[primitive.ObjectID]*models.User{}}
	svc := newTestService(teams, users, nil)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "Alpha")
	b, _ := svc.Create(ctx, "Beta")
	u := seedUser(users, 0)

	if err := svc.AddMember(ctx, a.ID, u); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	err := svc.AddMember(ctx, b.ID, u)
	if apperr.KindOf(err) != apperr.InvalidOperation {
		t.Fatalf("want InvalidOperation, got %v", err)
	}
}

func TestAddMemberTeamFull(t *testing.T) {
	teams := &fakeTeams{}
	users := &fakeMembers{users: map[primitive.ObjectID]*models.User{}}
	settings := &fakeSettings{teamSize: 2}
	svc := newTestService(teams, users, settings)
	ctx := context.Background()

	team, _ := svc.Create(ctx, "Alpha")
	for i := 0; i < 2; i++ {
		if err := svc.AddMember(ctx, team.ID, seedUser(users, 0)); err != nil {
			t.Fatalf("AddMember %d: %v", i, err)
		}
	}

	err := svc.AddMember(ctx, team.ID, seedUser(users, 0))
	if apperr.KindOf(err) != apperr.InvalidOperation {
		t.Fatalf("want InvalidOperation when full, got %v", err)
	}
}

func TestRemoveMemberSyncsAggregate(t *testing.T) {
	teams := &fakeTeams{}
	users := &fakeMembers{users: map[primitive.ObjectID]*models.User{}}
	svc := newTestService(teams, users, nil)
	ctx := context.Background()

	team, _ := svc.Create(ctx, "Alpha")
	a := seedUser(users, 5)
	b := seedUser(users, 10)
	svc.AddMember(ctx, team.ID, a)
	svc.AddMember(ctx, team.ID, b)

	if err := svc.RemoveMember(ctx, team.ID, a); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}

	got := teams.teams[team.ID]
	if got.TotalQuestionsSolved != 10 {
		t.Fatalf("total solved = %d, want 10", got.TotalQuestionsSolved)
	}
	if users.users[a].TeamID != nil {
		t.Fatal("removed user still references the team")
	}
}

func TestRemoveMemberNotOnTeam(t *testing.T) {
	teams := &fakeTeams{}
	users := &fakeMembers{users: map[primitive.ObjectID]*models.User{}}
	svc := newTestService(teams, users, nil)
	ctx := context.Background()

	team, _ := svc.Create(ctx, "Alpha")
	u := seedUser(users, 0)

	err := svc.RemoveMember(ctx, team.ID, u)
	if apperr.KindOf(err) != apperr.InvalidOperation {
		t.Fatalf("want InvalidOperation, got %v", err)
	}
}

func TestDeleteClearsMemberRefs(t *testing.T) {
	teams := &fakeTeams{}
	users := &fakeMembers{users: map[primitive.ObjectID]*models.User{}}
	svc := newTestService(teams, users, nil)
	ctx := context.Background()

	team, _ := svc.Create(ctx, "Alpha")
	a := seedUser(users, 0)
	b := seedUser(users, 0)
	svc.AddMember(ctx, team.ID, a)
	svc.AddMember(ctx, team.ID, b)

	if err := svc.Delete(ctx, team.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := teams.teams[team.ID]; ok {
		t.Fatal("team still exists")
	}
	for _, id := range []primitive.ObjectID{a, b} {
		if users.users[id].TeamID != nil {
			t.Fatalf("user %s still references the deleted team", id.Hex())
		}
	}
}

func TestSyncSolvedTotal(t *testing.T) {
	teams := &fakeTeams{}
	users := &fakeMembers{users: map[primitive.ObjectID]*models.User{}}
	svc := newTestService(teams, users, nil)
	ctx := context.Background()

	team, _ := svc.Create(ctx, "Alpha")
	a := seedUser(users, 5)
	b := seedUser(users, 10)
	c := seedUser(users, 0)
	for _, id := range []primitive.ObjectID{a, b, c} {
		if err := svc.AddMember(ctx, team.ID, id); err != nil {
			t.Fatalf("AddMember: %v", err)
		}
	}

	if got := teams.teams[team.ID].TotalQuestionsSolved; got != 15 {
		t.Fatalf("total solved = %d, want 15", got)
	}

	// A member's count changes; a resync converges on the new sum.
	users.users[c].SolvedQuestionsCount = 3
	if err := svc.SyncSolvedTotal(ctx, team.ID); err != nil {
		t.Fatalf("SyncSolvedTotal: %v", err)
	}
	if got := teams.teams[team.ID].TotalQuestionsSolved; got != 18 {
		t.Fatalf("total solved after resync = %d, want 18", got)
	}
}

func TestSyncSolvedTotalMissingTeam(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	if err := svc.SyncSolvedTotal(context.Background(), primitive.NewObjectID()); err != nil {
		t.Fatalf("sync of a missing team should be a no-op, got %v", err)
	}
}

func TestSyncSolvedTotalIgnoresStaleMembers(t *testing.T) {
	teams := &fakeTeams{}
	users := &fakeMembers{users: map[primitive.ObjectID]*models.User{}}
	svc := newTestService(teams, users, nil)
	ctx := context.Background()

	team, _ := svc.Create(ctx, "Alpha")
	a := seedUser(users, 5)
	svc.AddMember(ctx, team.ID, a)

	// Simulate a deleted user left behind in the members list.
	teams.teams[team.ID].Members = append(teams.teams[team.ID].Members, primitive.NewObjectID())

	if err := svc.SyncSolvedTotal(ctx, team.ID); err != nil {
		t.Fatalf("SyncSolvedTotal: %v", err)
	}
	if got := teams.teams[team.ID].TotalQuestionsSolved; got != 5 {
		t.Fatalf("total solved = %d, want 5", got)
	}
}

func TestSetTeamSize(t *testing.T) {
	settings := &fakeSettings{}
	svc := newTestService(nil, nil, settings)
	ctx := context.Background()

	if err := svc.SetTeamSize(ctx, 6, primitive.NewObjectID(), "Admin"); err != nil {
		t.Fatalf("SetTeamSize: %v", err)
	}
	if settings.teamSize != 6 {
		t.Fatalf("team size = %d, want 6", settings.teamSize)
	}

	err := svc.SetTeamSize(ctx, 0, primitive.NewObjectID(), "Admin")
	if apperr.KindOf(err) != apperr.InvalidInput {
		t.Fatalf("want InvalidInput for size 0, got %v", err)
	}
}
