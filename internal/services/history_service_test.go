package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordReadUpsertsPerSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(db)

	first, err := svc.RecordRead("user-1", "election-results", "Election results", "politics")
	require.NoError(t, err)

	again, err := svc.RecordRead("user-1", "election-results", "Election results, updated", "politics")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Election results, updated", again.Title)
	assert.False(t, again.ReadAt.Before(first.ReadAt))

	entries, err := svc.GetHistoryByUser("user-1", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHistoryScopedToUserAndCleared(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(db)

	_, err := svc.RecordRead("user-1", "a", "Article A", "culture")
	require.NoError(t, err)
	_, err = svc.RecordRead("user-2", "b", "Article B", "culture")
	require.NoError(t, err)

	require.NoError(t, svc.ClearHistory("user-1"))

	gone, err := svc.GetHistoryByUser("user-1", 10)
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := svc.GetHistoryByUser("user-2", 10)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestRecordReadRequiresFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(db)

	_, err := svc.RecordRead("user-1", "", "Title", "")
	assert.Error(t, err)
}
