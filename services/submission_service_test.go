package services

import (
	"testing"

	"hackathon-management-system/models"
)

func TestCreateSubmission(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)

	organizer := createUser(t, db, "org")
	member := createUser(t, db, "alice")
	hackathon := createHackathon(t, db, organizer.ID, nil)
	team := createTeam(t, db, "alpha", member.ID)

	sub, err := svc.CreateSubmission(hackathon.ID, SubmissionInput{
		TeamID:       team.ID,
		ProjectTitle: "Rocket",
		ProjectDesc:  "goes up",
		GithubURL:    "https://github.com/x/rocket",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sub.ID == "" || sub.HackathonID != hackathon.ID || sub.TeamID != team.ID {
		t.Errorf("unexpected submission: %+v", sub)
	}
}

func TestCreateSubmissionValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)

	organizer := createUser(t, db, "org")
	hackathon := createHackathon(t, db, organizer.ID, nil)

	_, err := svc.CreateSubmission(hackathon.ID, SubmissionInput{TeamID: "t"})
	assertErrorKind(t, err, KindValidation)

	_, err = svc.CreateSubmission(hackathon.ID, SubmissionInput{
		ProjectTitle: "x", ProjectDesc: "y", GithubURL: "z",
	})
	assertErrorKind(t, err, KindValidation)
}

func TestCreateSubmissionDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)

	organizer := createUser(t, db, "org")
	member := createUser(t, db, "alice")
	hackathon := createHackathon(t, db, organizer.ID, nil)
	team := createTeam(t, db, "alpha", member.ID)

	input := SubmissionInput{
		TeamID:       team.ID,
		ProjectTitle: "Rocket",
		ProjectDesc:  "goes up",
		GithubURL:    "https://github.com/x/rocket",
	}
	if _, err := svc.CreateSubmission(hackathon.ID, input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateSubmission(hackathon.ID, input)
	assertErrorKind(t, err, KindDuplicate)

	var count int64
	db.Model(&models.ProjectSubmission{}).
		Where("hackathon_id = ? AND team_id = ?", hackathon.ID, team.ID).
		Count(&count)
	if count != 1 {
		t.Fatalf("expected one submission row, got %d", count)
	}

	// Same team may still submit to a different hackathon.
	other := createHackathon(t, db, organizer.ID, nil)
	if _, err := svc.CreateSubmission(other.ID, input); err != nil {
		t.Fatalf("submission to another hackathon failed: %v", err)
	}
}

func TestCreateSubmissionAfterFinalize(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)

	organizer := createUser(t, db, "org")
	member := createUser(t, db, "alice")
	hackathon := createHackathon(t, db, organizer.ID, func(h *models.Hackathon) {
		h.IsFinalized = true
	})
	team := createTeam(t, db, "alpha", member.ID)

	_, err := svc.CreateSubmission(hackathon.ID, SubmissionInput{
		TeamID:       team.ID,
		ProjectTitle: "Late",
		ProjectDesc:  "too late",
		GithubURL:    "https://github.com/x/late",
	})
	assertErrorKind(t, err, KindClosed)
}

func TestUpdateSubmission(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)

	organizer := createUser(t, db, "org")
	member := createUser(t, db, "alice")
	hackathon := createHackathon(t, db, organizer.ID, nil)
	team := createTeam(t, db, "alpha", member.ID)
	sub := createSubmission(t, db, hackathon.ID, team.ID, "proj")

	updated, err := svc.UpdateSubmission(sub.ID, SubmissionInput{
		ProjectTitle: "Renamed",
		ProjectDesc:  "better",
		GithubURL:    "https://github.com/x/renamed",
		LiveURL:      "https://renamed.example.com",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ProjectTitle != "Renamed" || updated.LiveURL != "https://renamed.example.com" {
		t.Errorf("unexpected update result: %+v", updated)
	}
}

func TestUpdateSubmissionAfterFinalize(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)

	organizer := createUser(t, db, "org")
	member := createUser(t, db, "alice")
	hackathon := createHackathon(t, db, organizer.ID, func(h *models.Hackathon) {
		h.IsFinalized = true
	})
	team := createTeam(t, db, "alpha", member.ID)
	sub := createSubmission(t, db, hackathon.ID, team.ID, "proj")

	_, err := svc.UpdateSubmission(sub.ID, SubmissionInput{
		ProjectTitle: "x", ProjectDesc: "y", GithubURL: "z",
	})
	assertErrorKind(t, err, KindClosed)
}

func TestGetMySubmission(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)

	organizer := createUser(t, db, "org")
	member := createUser(t, db, "alice")
	teammate := createUser(t, db, "bob")
	loner := createUser(t, db, "carol")
	hackathon := createHackathon(t, db, organizer.ID, nil)
	team := createTeam(t, db, "alpha", member.ID, teammate.ID)
	sub := createSubmission(t, db, hackathon.ID, team.ID, "proj")

	for _, userID := range []uint{member.ID, teammate.ID} {
		got, err := svc.GetMySubmission(hackathon.ID, userID)
		if err != nil {
			t.Fatalf("get my submission failed for %d: %v", userID, err)
		}
		if got.ID != sub.ID {
			t.Errorf("expected submission %s, got %s", sub.ID, got.ID)
		}
	}

	_, err := svc.GetMySubmission(hackathon.ID, loner.ID)
	assertErrorKind(t, err, KindNotFound)
}
