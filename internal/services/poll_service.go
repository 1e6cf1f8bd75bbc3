package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

// PollServiceProvider defines the interface for poll services.
type PollServiceProvider interface {
	CreatePoll(question string, options []string, status string, scheduledFor *time.Time) (models.Poll, error)
	GetPollByID(id string) (models.Poll, error)
	ListPolls() ([]models.Poll, error)
	UpdatePoll(id string, question string, options []string, status string, scheduledFor *time.Time) (models.Poll, error)
	Vote(pollID, userID string, optionIndex int) (models.Poll, error)
	DeletePoll(id string) error
	ActivateScheduledPolls(now time.Time) (int, error)
}

// PollService provides business logic for reader polls.
type PollService struct {
	db *sql.DB
}

// NewPollService creates a new PollService.
func NewPollService(db *sql.DB) *PollService {
	return &PollService{db: db}
}

const pollColumns = `id, question, options_json, status, scheduled_for, votes_json, created_at, updated_at`

func scanPoll(row interface{ Scan(...any) error }) (models.Poll, error) {
	var p models.Poll
	err := row.Scan(&p.ID, &p.Question, &p.OptionsJSON, &p.Status, &p.ScheduledFor, &p.VotesJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Poll{}, err
	}
	p.PrepareForAPI()
	return p, nil
}

// CreatePoll stores a new poll with zeroed tallies.
func (s *PollService) CreatePoll(question string, options []string, status string, scheduledFor *time.Time) (models.Poll, error) {
	if question == "" || len(options) < 2 {
		return models.Poll{}, apperrors.Validation("a question and at least two options are required")
	}
	if status == "" {
		status = models.PollStatusActive
	}

	poll := models.Poll{
		ID:           uuid.New().String(),
		Question:     question,
		Status:       status,
		ScheduledFor: scheduledFor,
	}
	for _, text := range options {
		poll.Options = append(poll.Options, models.PollOption{Text: text})
	}
	poll.PrepareForDB()

	_, err := s.db.Exec(
		"INSERT INTO polls (id, question, options_json, status, scheduled_for, votes_json) VALUES (?, ?, ?, ?, ?, ?)",
		poll.ID, poll.Question, poll.OptionsJSON, poll.Status, poll.ScheduledFor, poll.VotesJSON,
	)
	if err != nil {
		return models.Poll{}, err
	}
	return s.GetPollByID(poll.ID)
}

// GetPollByID retrieves one poll.
func (s *PollService) GetPollByID(id string) (models.Poll, error) {
	poll, err := scanPoll(s.db.QueryRow("SELECT "+pollColumns+" FROM polls WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return models.Poll{}, apperrors.NotFound("poll not found")
	}
	return poll, err
}

// ListPolls retrieves all polls, newest first.
func (s *PollService) ListPolls() ([]models.Poll, error) {
	rows, err := s.db.Query("SELECT " + pollColumns + " FROM polls ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var polls []models.Poll
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	return polls, rows.Err()
}

// UpdatePoll applies a partial update. Replacing the options resets tallies.
func (s *PollService) UpdatePoll(id string, question string, options []string, status string, scheduledFor *time.Time) (models.Poll, error) {
	poll, err := s.GetPollByID(id)
	if err != nil {
		return models.Poll{}, err
	}

	if question != "" {
		poll.Question = question
	}
	if len(options) > 0 {
		poll.Options = nil
		for _, text := range options {
			poll.Options = append(poll.Options, models.PollOption{Text: text})
		}
		poll.Votes = nil
	}
	if status != "" {
		switch status {
		case models.PollStatusActive, models.PollStatusClosed, models.PollStatusScheduled:
			poll.Status = status
		default:
			return models.Poll{}, apperrors.Validation("invalid poll status")
		}
	}
	if scheduledFor != nil {
		poll.ScheduledFor = scheduledFor
	}

	poll.PrepareForDB()
	_, err = s.db.Exec(
		"UPDATE polls SET question = ?, options_json = ?, status = ?, scheduled_for = ?, votes_json = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		poll.Question, poll.OptionsJSON, poll.Status, poll.ScheduledFor, poll.VotesJSON, id,
	)
	if err != nil {
		return models.Poll{}, err
	}
	return s.GetPollByID(id)
}

// Vote records a vote and bumps the option tally. Closed and scheduled polls
// reject votes.
func (s *PollService) Vote(pollID, userID string, optionIndex int) (models.Poll, error) {
	poll, err := s.GetPollByID(pollID)
	if err != nil {
		return models.Poll{}, err
	}

	if poll.Status != models.PollStatusActive {
		return models.Poll{}, apperrors.Validation("poll is not open for voting")
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return models.Poll{}, apperrors.Validation("option index out of range")
	}

	poll.Options[optionIndex].Votes++
	poll.Votes = append(poll.Votes, models.PollVote{UserID: userID, OptionIndex: optionIndex})
	poll.PrepareForDB()

	_, err = s.db.Exec(
		"UPDATE polls SET options_json = ?, votes_json = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		poll.OptionsJSON, poll.VotesJSON, pollID,
	)
	if err != nil {
		return models.Poll{}, err
	}
	return s.GetPollByID(pollID)
}

// DeletePoll removes a poll.
func (s *PollService) DeletePoll(id string) error {
	res, err := s.db.Exec("DELETE FROM polls WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("poll not found")
	}
	return nil
}

// ActivateScheduledPolls flips scheduled polls whose opening time has arrived
// to active. Scheduled polls without a time stay untouched. Invoked by the
// scheduler.
func (s *PollService) ActivateScheduledPolls(now time.Time) (int, error) {
	res, err := s.db.Exec(
		"UPDATE polls SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE status = ? AND scheduled_for IS NOT NULL AND scheduled_for <= ?",
		models.PollStatusActive, models.PollStatusScheduled, now,
	)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
