package services

import (
	"errors"
	"math"
	"sort"

	"hackathon-management-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoringService records judge scores and computes per-submission averages.
// Ranking and winner finalization build on it (see WinnerService).
type ScoringService struct {
	DB *gorm.DB
}

func NewScoringService(db *gorm.DB) *ScoringService {
	return &ScoringService{DB: db}
}

// AverageScore returns the arithmetic mean of the given scores rounded to
// two decimals, or nil when there are no scores. The nil is meaningful:
// "no score yet" is never coerced to zero except at the ranking fallback.
func AverageScore(scores []models.JudgeScore) *float64 {
	if len(scores) == 0 {
		return nil
	}
	sum := 0
	for _, s := range scores {
		sum += s.Score
	}
	avg := math.Round(float64(sum)/float64(len(scores))*100) / 100
	return &avg
}

// rankSubmissions orders submissions by average score descending. A nil
// average sorts as zero, for ordering only. The sort is stable, so among
// equal averages the incoming order (created_at ascending) is preserved.
func rankSubmissions(subs []models.ProjectSubmission) []models.ProjectSubmission {
	ranked := make([]models.ProjectSubmission, len(subs))
	copy(ranked, subs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankValue(ranked[i].Scores) > rankValue(ranked[j].Scores)
	})
	return ranked
}

func rankValue(scores []models.JudgeScore) float64 {
	if avg := AverageScore(scores); avg != nil {
		return *avg
	}
	return 0
}

// SubmitScore records judgeID's score for a submission. The write is an
// upsert keyed by (submission, judge): the ON CONFLICT clause makes the
// insert-or-overwrite a single statement, so concurrent submissions resolve
// to last-commit-wins at the store without a read-then-write race.
func (s *ScoringService) SubmitScore(submissionID string, judgeID uint, score int) (*models.JudgeScore, error) {
	if score < 0 || score > 100 {
		return nil, ValidationError("score must be between 0 and 100")
	}

	var submission models.ProjectSubmission
	if err := s.DB.First(&submission, "id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("submission not found")
		}
		return nil, err
	}

	record := models.JudgeScore{
		ID:           uuid.NewString(),
		SubmissionID: submissionID,
		JudgeID:      judgeID,
		Score:        score,
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_id"}, {Name: "judge_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"score": score}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller gets the surviving row, not the candidate one.
	var saved models.JudgeScore
	if err := s.DB.Where("submission_id = ? AND judge_id = ?", submissionID, judgeID).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// ScoreSubmission handles POST /submissions/:id/score. Only the hackathon's
// organizer or an assigned judge may score.
func (s *ScoringService) ScoreSubmission(c *fiber.Ctx) error {
	judgeID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	var submission models.ProjectSubmission
	if err := s.DB.First(&submission, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, NotFoundError("submission not found"))
	}
	if err := requireJudgeOrOrganizer(s.DB, judgeID, submission.HackathonID); err != nil {
		return respondError(c, err)
	}

	var body struct {
		Score *int `json:"score"`
	}
	if err := c.BodyParser(&body); err != nil || body.Score == nil {
		return respondError(c, ValidationError("score is required"))
	}

	record, err := s.SubmitScore(submission.ID, judgeID, *body.Score)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Score saved",
		"score":   record.Score,
	})
}
