package services

import (
	"fmt"
	"testing"
	"time"

	"hackathon-management-system/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test and migrates the
// full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Hackathon{},
		&models.HackathonTeam{},
		&models.HackathonTeamMember{},
		&models.HackathonRegistration{},
		&models.ProjectSubmission{},
		&models.JudgeScore{},
		&models.HackathonJudge{},
		&models.Winner{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func assertErrorKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	domainErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *services.Error, got %T: %v", err, err)
	}
	if domainErr.Kind != kind {
		t.Fatalf("expected error kind %d, got %d (%v)", kind, domainErr.Kind, err)
	}
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func createHackathon(t *testing.T, db *gorm.DB, organizerID uint, mutate func(*models.Hackathon)) *models.Hackathon {
	t.Helper()
	hackathon := models.Hackathon{
		ID:                uuid.NewString(),
		Slug:              "test-" + uuid.NewString()[:8],
		EventName:         "Test Hackathon",
		OrganizerID:       organizerID,
		StartTime:         time.Now().Add(24 * time.Hour),
		EndTime:           time.Now().Add(72 * time.Hour),
		ParticipationType: models.ParticipationTeam,
		Status:            models.HackathonStatusPublished,
	}
	if mutate != nil {
		mutate(&hackathon)
	}
	if err := db.Create(&hackathon).Error; err != nil {
		t.Fatalf("failed to create hackathon: %v", err)
	}
	return &hackathon
}

// createTeam builds a team whose first member is the owner.
func createTeam(t *testing.T, db *gorm.DB, name string, memberIDs ...uint) *models.HackathonTeam {
	t.Helper()
	if len(memberIDs) == 0 {
		t.Fatal("createTeam needs at least one member")
	}
	team := models.HackathonTeam{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: memberIDs[0],
	}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	for i, id := range memberIDs {
		role := models.TeamRoleMember
		if i == 0 {
			role = models.TeamRoleOwner
		}
		member := models.HackathonTeamMember{
			ID:       uuid.NewString(),
			TeamID:   team.ID,
			MemberID: id,
			Role:     role,
		}
		if err := db.Create(&member).Error; err != nil {
			t.Fatalf("failed to create team member: %v", err)
		}
	}
	return &team
}

func createSubmission(t *testing.T, db *gorm.DB, hackathonID, teamID, title string) *models.ProjectSubmission {
	t.Helper()
	submission := models.ProjectSubmission{
		ID:           uuid.NewString(),
		HackathonID:  hackathonID,
		TeamID:       teamID,
		ProjectTitle: title,
		ProjectDesc:  "a project",
		GithubURL:    "https://github.com/example/" + title,
	}
	if err := db.Create(&submission).Error; err != nil {
		t.Fatalf("failed to create submission: %v", err)
	}
	return &submission
}
