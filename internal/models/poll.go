package models

import (
	"encoding/json"
	"time"
)

// Poll statuses.
const (
	PollStatusActive    = "active"
	PollStatusClosed    = "closed"
	PollStatusScheduled = "scheduled"
)

// PollOption is a single answer with its running tally.
type PollOption struct {
	Text  string `json:"text"`
	Votes int64  `json:"votes"`
}

// PollVote records who voted for which option.
type PollVote struct {
	UserID      string `json:"userId"`
	OptionIndex int    `json:"optionIndex"`
}

// Poll is a reader poll with per-option tallies and a vote log.
type Poll struct {
	ID          string       `json:"id"`
	Question    string       `json:"question"`
	Options     []PollOption `json:"options"`
	OptionsJSON string       `json:"-"`
	Status      string       `json:"status"`
	// ScheduledFor is when a scheduled poll opens; nil means not yet set.
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	Votes        []PollVote `json:"votes"`
	VotesJSON    string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// PrepareForDB marshals options and votes into their JSON column form.
func (p *Poll) PrepareForDB() {
	if p.Options == nil {
		p.Options = []PollOption{}
	}
	if p.Votes == nil {
		p.Votes = []PollVote{}
	}
	opts, _ := json.Marshal(p.Options)
	p.OptionsJSON = string(opts)
	votes, _ := json.Marshal(p.Votes)
	p.VotesJSON = string(votes)
}

// PrepareForAPI unmarshals the JSON columns back into struct form.
func (p *Poll) PrepareForAPI() {
	p.Options = []PollOption{}
	if p.OptionsJSON != "" {
		_ = json.Unmarshal([]byte(p.OptionsJSON), &p.Options)
	}
	p.Votes = []PollVote{}
	if p.VotesJSON != "" {
		_ = json.Unmarshal([]byte(p.VotesJSON), &p.Votes)
	}
}
