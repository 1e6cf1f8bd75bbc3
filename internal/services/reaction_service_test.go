package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetReactionUpserts(t *testing.T) {
	svc := NewReactionService(newTestDB(t))

	first, err := svc.SetReaction("article-1", "user-1", "like")
	require.NoError(t, err)
	assert.Equal(t, "like", first.Type)

	// Re-reacting replaces the type instead of adding a second row.
	second, err := svc.SetReaction("article-1", "user-1", "love")
	require.NoError(t, err)
	assert.Equal(t, "love", second.Type)

	reactions, err := svc.GetReactionsByArticle("article-1")
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, "love", reactions[0].Type)
}

func TestSetReactionRejectsUnknownType(t *testing.T) {
	svc := NewReactionService(newTestDB(t))

	_, err := svc.SetReaction("article-1", "user-1", "meh")
	assert.Error(t, err)
}

func TestCountReactionsByArticle(t *testing.T) {
	svc := NewReactionService(newTestDB(t))

	_, err := svc.SetReaction("article-1", "user-1", "like")
	require.NoError(t, err)
	_, err = svc.SetReaction("article-1", "user-2", "like")
	require.NoError(t, err)
	_, err = svc.SetReaction("article-1", "user-3", "sad")
	require.NoError(t, err)
	_, err = svc.SetReaction("article-2", "user-1", "angry")
	require.NoError(t, err)

	counts, err := svc.CountReactionsByArticle("article-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["like"])
	assert.Equal(t, int64(1), counts["sad"])
	assert.NotContains(t, counts, "angry")
}

func TestDeleteReaction(t *testing.T) {
	svc := NewReactionService(newTestDB(t))

	_, err := svc.SetReaction("article-1", "user-1", "like")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReaction("article-1", "user-1"))

	reactions, err := svc.GetReactionsByArticle("article-1")
	require.NoError(t, err)
	assert.Empty(t, reactions)
}
