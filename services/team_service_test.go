package services

import (
	"testing"

	"hackathon-management-system/models"
)

func TestCreateTeamEnrollsOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)

	creator := createUser(t, db, "alice")
	team, err := svc.CreateTeam("alpha", creator.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	loaded, err := svc.GetTeam(team.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(loaded.Members) != 1 {
		t.Fatalf("expected one member, got %d", len(loaded.Members))
	}
	if loaded.Members[0].MemberID != creator.ID || loaded.Members[0].Role != models.TeamRoleOwner {
		t.Errorf("creator is not the owner: %+v", loaded.Members[0])
	}
}

func TestCreateTeamRequiresName(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)

	creator := createUser(t, db, "alice")
	for _, name := range []string{"", "   "} {
		_, err := svc.CreateTeam(name, creator.ID)
		assertErrorKind(t, err, KindValidation)
	}
}

func TestAddMemberRoles(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner")
	coleader := createUser(t, db, "coleader")
	member := createUser(t, db, "member")

	team, err := svc.CreateTeam("alpha", owner.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	added, err := svc.AddMember(team.ID, owner.ID, coleader.ID, models.TeamRoleColeader)
	if err != nil {
		t.Fatalf("add coleader failed: %v", err)
	}
	if added.Role != models.TeamRoleColeader {
		t.Errorf("expected coleader role, got %q", added.Role)
	}

	// Empty role defaults to plain member, and a coleader may add.
	added, err = svc.AddMember(team.ID, coleader.ID, member.ID, "")
	if err != nil {
		t.Fatalf("coleader add failed: %v", err)
	}
	if added.Role != models.TeamRoleMember {
		t.Errorf("expected member role, got %q", added.Role)
	}

	_, err = svc.AddMember(team.ID, owner.ID, member.ID, "boss")
	assertErrorKind(t, err, KindValidation)
}

func TestAddMemberNonManagerRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner")
	member := createUser(t, db, "member")
	outsider := createUser(t, db, "outsider")

	team, err := svc.CreateTeam("alpha", owner.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.AddMember(team.ID, owner.ID, member.ID, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Neither an outsider nor a plain member may grow the roster.
	_, err = svc.AddMember(team.ID, outsider.ID, outsider.ID, "")
	assertErrorKind(t, err, KindAuthorization)

	_, err = svc.AddMember(team.ID, member.ID, outsider.ID, "")
	assertErrorKind(t, err, KindAuthorization)
}

func TestAddMemberDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner")
	member := createUser(t, db, "member")

	team, err := svc.CreateTeam("alpha", owner.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.AddMember(team.ID, owner.ID, member.ID, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	_, err = svc.AddMember(team.ID, owner.ID, member.ID, "")
	assertErrorKind(t, err, KindDuplicate)

	_, err = svc.AddMember(team.ID, owner.ID, owner.ID, "")
	assertErrorKind(t, err, KindDuplicate)
}

func TestAddMemberUnknownTargets(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner")
	team, err := svc.CreateTeam("alpha", owner.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.AddMember("missing", owner.ID, owner.ID, "")
	assertErrorKind(t, err, KindNotFound)

	_, err = svc.AddMember(team.ID, owner.ID, 9999, "")
	assertErrorKind(t, err, KindNotFound)
}

func TestRemoveMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner")
	member := createUser(t, db, "member")
	outsider := createUser(t, db, "outsider")

	team, err := svc.CreateTeam("alpha", owner.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.AddMember(team.ID, owner.ID, member.ID, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	err = svc.RemoveMember(team.ID, outsider.ID, member.ID)
	assertErrorKind(t, err, KindAuthorization)

	// The owner cannot be removed, even by themselves.
	err = svc.RemoveMember(team.ID, owner.ID, owner.ID)
	assertErrorKind(t, err, KindValidation)

	if err := svc.RemoveMember(team.ID, owner.ID, member.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	err = svc.RemoveMember(team.ID, owner.ID, member.ID)
	assertErrorKind(t, err, KindNotFound)
}

func TestRemoveMemberSelfLeave(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner")
	member := createUser(t, db, "member")

	team, err := svc.CreateTeam("alpha", owner.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.AddMember(team.ID, owner.ID, member.ID, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// A plain member may leave on their own.
	if err := svc.RemoveMember(team.ID, member.ID, member.ID); err != nil {
		t.Fatalf("self leave failed: %v", err)
	}

	loaded, err := svc.GetTeam(team.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(loaded.Members) != 1 {
		t.Errorf("expected only the owner left, got %d members", len(loaded.Members))
	}
}

func TestGetUserTeams(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	first, err := svc.CreateTeam("first", alice.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.CreateTeam("second", bob.ID); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	teams, err := svc.GetUserTeams(alice.ID)
	if err != nil {
		t.Fatalf("get user teams failed: %v", err)
	}
	if len(teams) != 1 || teams[0].ID != first.ID {
		t.Errorf("expected only team %s, got %+v", first.ID, teams)
	}

	none, err := svc.GetUserTeams(9999)
	if err != nil {
		t.Fatalf("get user teams failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no teams, got %d", len(none))
	}
}
