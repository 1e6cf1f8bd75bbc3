package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/models"
)

func TestCreatePollNeedsTwoOptions(t *testing.T) {
	svc := NewPollService(newTestDB(t))

	_, err := svc.CreatePoll("Best team?", []string{"only one"}, "", nil)
	assert.Error(t, err)
}

func TestVoteIncrementsTally(t *testing.T) {
	svc := NewPollService(newTestDB(t))

	poll, err := svc.CreatePoll("Best team?", []string{"Reds", "Blues"}, "", nil)
	require.NoError(t, err)

	voted, err := svc.Vote(poll.ID, "user-1", 1)
	require.NoError(t, err)
	require.Len(t, voted.Options, 2)
	assert.Equal(t, int64(0), voted.Options[0].Votes)
	assert.Equal(t, int64(1), voted.Options[1].Votes)
}

func TestVoteOnClosedPollRejected(t *testing.T) {
	svc := NewPollService(newTestDB(t))

	poll, err := svc.CreatePoll("Best team?", []string{"Reds", "Blues"}, "", nil)
	require.NoError(t, err)
	_, err = svc.UpdatePoll(poll.ID, "", nil, models.PollStatusClosed, nil)
	require.NoError(t, err)

	_, err = svc.Vote(poll.ID, "user-1", 0)
	assert.Error(t, err)
}

func TestVoteOutOfRangeRejected(t *testing.T) {
	svc := NewPollService(newTestDB(t))

	poll, err := svc.CreatePoll("Best team?", []string{"Reds", "Blues"}, "", nil)
	require.NoError(t, err)

	_, err = svc.Vote(poll.ID, "user-1", 2)
	assert.Error(t, err)
	_, err = svc.Vote(poll.ID, "user-1", -1)
	assert.Error(t, err)
}

func TestReplacingOptionsResetsTallies(t *testing.T) {
	svc := NewPollService(newTestDB(t))

	poll, err := svc.CreatePoll("Best team?", []string{"Reds", "Blues"}, "", nil)
	require.NoError(t, err)
	_, err = svc.Vote(poll.ID, "user-1", 0)
	require.NoError(t, err)

	updated, err := svc.UpdatePoll(poll.ID, "", []string{"Greens", "Yellows", "Pinks"}, "", nil)
	require.NoError(t, err)
	require.Len(t, updated.Options, 3)
	for _, opt := range updated.Options {
		assert.Equal(t, int64(0), opt.Votes)
	}
}

func TestActivateScheduledPolls(t *testing.T) {
	svc := NewPollService(newTestDB(t))
	now := time.Now()

	past := now.Add(-time.Minute)
	due, err := svc.CreatePoll("Later?", []string{"Yes", "No"}, models.PollStatusScheduled, &past)
	require.NoError(t, err)
	later := now.Add(time.Hour)
	future, err := svc.CreatePoll("Much later?", []string{"Yes", "No"}, models.PollStatusScheduled, &later)
	require.NoError(t, err)
	active, err := svc.CreatePoll("Now?", []string{"Yes", "No"}, "", nil)
	require.NoError(t, err)

	n, err := svc.ActivateScheduledPolls(now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := svc.GetPollByID(due.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PollStatusActive, got.Status)

	still, err := svc.GetPollByID(future.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PollStatusScheduled, still.Status)

	unchanged, err := svc.GetPollByID(active.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PollStatusActive, unchanged.Status)
}

func TestScheduledPollWithoutTimeStaysScheduled(t *testing.T) {
	svc := NewPollService(newTestDB(t))

	poll, err := svc.CreatePoll("Some day?", []string{"Yes", "No"}, models.PollStatusScheduled, nil)
	require.NoError(t, err)

	n, err := svc.ActivateScheduledPolls(time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := svc.GetPollByID(poll.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PollStatusScheduled, got.Status)
}
