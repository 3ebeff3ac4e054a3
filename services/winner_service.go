package services

import (
	"errors"
	"log"
	"time"

	"hackathon-management-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WinnerService finalizes hackathon results and serves the winner board.
type WinnerService struct {
	DB *gorm.DB
}

func NewWinnerService(db *gorm.DB) *WinnerService {
	return &WinnerService{DB: db}
}

// FinalizeWinners ranks all submissions of the hackathon by average score
// and awards positions 1..3. Submissions without any score never win a
// position, even when the zero-fallback ordering places them in the top 3,
// so fewer than 3 winners is possible. The winner rows and the finalized
// flag commit in one transaction.
//
// A finalized hackathon cannot be finalized again; the flag transition is
// one-way and re-running would duplicate winner rows.
func (s *WinnerService) FinalizeWinners(hackathonID string) ([]models.Winner, error) {
	var hackathon models.Hackathon
	if err := s.DB.First(&hackathon, "id = ?", hackathonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("hackathon not found")
		}
		return nil, err
	}

	if hackathon.IsFinalized {
		return nil, ClosedError("hackathon already finalized")
	}

	var submissions []models.ProjectSubmission
	err := s.DB.Preload("Scores").
		Where("hackathon_id = ?", hackathonID).
		Order("created_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	if len(submissions) == 0 {
		return nil, StateError("no submissions to finalize")
	}

	ranked := rankSubmissions(submissions)
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	var winners []models.Winner
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for i, sub := range ranked {
			if AverageScore(sub.Scores) == nil {
				continue
			}
			winner := models.Winner{
				ID:        uuid.NewString(),
				ProjectID: sub.ID,
				Position:  i + 1,
			}
			if err := tx.Create(&winner).Error; err != nil {
				return err
			}
			winners = append(winners, winner)
		}

		return tx.Model(&models.Hackathon{}).
			Where("id = ?", hackathonID).
			Update("is_finalized", true).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Winners] Finalized hackathon %s: %d winner(s)", hackathonID, len(winners))
	return winners, nil
}

// ListWinners returns the podium for a hackathon, position ascending, with
// submission metadata, team roster, and the average score.
func (s *WinnerService) ListWinners(hackathonID string) ([]WinnerView, error) {
	var winners []models.Winner
	err := s.DB.
		Joins("JOIN project_submissions ON project_submissions.id = winners.project_id").
		Where("project_submissions.hackathon_id = ?", hackathonID).
		Order("winners.position ASC").
		Preload("Project.Scores").
		Preload("Project.Team.Members.User").
		Find(&winners).Error
	if err != nil {
		return nil, err
	}

	views := make([]WinnerView, 0, len(winners))
	for _, w := range winners {
		sub := w.Project
		views = append(views, WinnerView{
			ID:       w.ID,
			Position: w.Position,
			Score:    AverageScore(sub.Scores),
			Project: WinnerProjectView{
				ID:        sub.ID,
				Title:     sub.ProjectTitle,
				GithubURL: sub.GithubURL,
				LiveURL:   sub.LiveURL,
			},
			Team:      buildTeamView(&sub.Team),
			CreatedAt: w.CreatedAt.Format(time.RFC3339),
		})
	}
	return views, nil
}

// Finalize handles POST /winners/hackathons/:id/finalize (organizer only).
func (s *WinnerService) Finalize(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}
	hackathonID := c.Params("id")

	var hackathon models.Hackathon
	if err := s.DB.First(&hackathon, "id = ?", hackathonID).Error; err != nil {
		return respondError(c, NotFoundError("hackathon not found"))
	}
	if hackathon.OrganizerID != userID {
		return respondError(c, AuthorizationError("only the organizer can finalize winners"))
	}

	winners, err := s.FinalizeWinners(hackathonID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Winners finalized",
		"count":   len(winners),
	})
}

// GetWinners handles GET /winners/hackathons/:id (public).
func (s *WinnerService) GetWinners(c *fiber.Ctx) error {
	views, err := s.ListWinners(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}
