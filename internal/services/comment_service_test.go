package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/models"
	"github.com/sfares/newsroom-be/internal/sanitize"
)

func TestCreateCommentSanitizesAuthorAndContent(t *testing.T) {
	svc := NewCommentService(newTestDB(t))

	comment, err := svc.CreateComment("article-1", `<b>Jane</b>`, `<script>x()</script>Nice piece!`, true)
	require.NoError(t, err)
	assert.Equal(t, "Jane", comment.Author)
	assert.Equal(t, "Nice piece!", comment.Content)
	assert.NotContains(t, comment.Content, "<")
}

func TestCreateCommentCapsLengths(t *testing.T) {
	svc := NewCommentService(newTestDB(t))

	comment, err := svc.CreateComment("article-1",
		strings.Repeat("a", 200), strings.Repeat("b", 3000), true)
	require.NoError(t, err)
	assert.Len(t, []rune(comment.Author), sanitize.MaxAuthorNameLen)
	assert.Len(t, []rune(comment.Content), sanitize.MaxPlainTextLen)
}

func TestCreateCommentModerationGate(t *testing.T) {
	svc := NewCommentService(newTestDB(t))

	pending, err := svc.CreateComment("article-1", "Jane", "First!", true)
	require.NoError(t, err)
	assert.Equal(t, models.CommentStatusPending, pending.Status)

	approved, err := svc.CreateComment("article-1", "Jane", "Second!", false)
	require.NoError(t, err)
	assert.Equal(t, models.CommentStatusApproved, approved.Status)
}

func TestGetCommentsByArticleFiltersStatus(t *testing.T) {
	svc := NewCommentService(newTestDB(t))

	_, err := svc.CreateComment("article-1", "Jane", "Pending one", true)
	require.NoError(t, err)
	visible, err := svc.CreateComment("article-1", "Joe", "Approved one", false)
	require.NoError(t, err)

	comments, err := svc.GetCommentsByArticle("article-1", models.CommentStatusApproved)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, visible.ID, comments[0].ID)
}

func TestSetCommentStatusAndLike(t *testing.T) {
	svc := NewCommentService(newTestDB(t))

	comment, err := svc.CreateComment("article-1", "Jane", "First!", true)
	require.NoError(t, err)

	moderated, err := svc.SetCommentStatus(comment.ID, models.CommentStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.CommentStatusApproved, moderated.Status)

	_, err = svc.SetCommentStatus(comment.ID, "bogus")
	assert.Error(t, err)

	liked, err := svc.LikeComment(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.Likes)
}
