package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

func newArticleService(t *testing.T) *ArticleService {
	t.Helper()
	db := newTestDB(t)
	return NewArticleService(db, NewCategoryService(db))
}

func baseArticle(slug string) models.Article {
	return models.Article{
		Title:   "Title " + slug,
		Excerpt: "Excerpt",
		Content: "<p>Body</p>",
		Author:  "Jane Doe",
		Slug:    slug,
	}
}

func TestCreateArticleSanitizesContent(t *testing.T) {
	svc := newArticleService(t)

	input := baseArticle("breaking-news")
	input.Content = `<p>Safe</p><script>alert("xss")</script>`

	article, err := svc.CreateArticle(input)
	require.NoError(t, err)
	assert.Contains(t, article.Content, "<p>Safe</p>")
	assert.NotContains(t, article.Content, "<script")
}

func TestCreateArticleDuplicateSlugConflicts(t *testing.T) {
	svc := newArticleService(t)

	_, err := svc.CreateArticle(baseArticle("breaking-news"))
	require.NoError(t, err)

	_, err = svc.CreateArticle(baseArticle("breaking-news"))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.From(err).Status)
}

func TestGetArticleBySlugCountsView(t *testing.T) {
	svc := newArticleService(t)

	_, err := svc.CreateArticle(baseArticle("breaking-news"))
	require.NoError(t, err)

	first, err := svc.GetArticleBySlug("breaking-news", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	second, err := svc.GetArticleBySlug("breaking-news", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Views)
}

func TestListArticlesFiltersByCategory(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(db)
	svc := NewArticleService(db, categories)

	_, err := categories.CreateCategory(models.Category{Name: "Sports", Slug: "sports"})
	require.NoError(t, err)

	a := baseArticle("match-report")
	a.CategorySlug = "sports"
	a.Status = models.ArticleStatusPublished
	_, err = svc.CreateArticle(a)
	require.NoError(t, err)

	b := baseArticle("other-news")
	b.Status = models.ArticleStatusPublished
	_, err = svc.CreateArticle(b)
	require.NoError(t, err)

	articles, total, err := svc.ListArticles(ArticleFilter{CategorySlug: "sports"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, articles, 1)
	assert.Equal(t, "match-report", articles[0].Slug)
	require.NotNil(t, articles[0].Category)
	assert.Equal(t, "Sports", articles[0].Category.Name)
}

func TestListArticlesSearchEscapesWildcards(t *testing.T) {
	svc := newArticleService(t)

	a := baseArticle("percent-story")
	a.Title = "100% true"
	_, err := svc.CreateArticle(a)
	require.NoError(t, err)

	_, err = svc.CreateArticle(baseArticle("unrelated"))
	require.NoError(t, err)

	articles, total, err := svc.ListArticles(ArticleFilter{Search: "100%"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, articles, 1)
	assert.Equal(t, "percent-story", articles[0].Slug)
}

func TestPublishDueArticles(t *testing.T) {
	svc := newArticleService(t)
	now := time.Now()

	due := baseArticle("due-article")
	due.Status = models.ArticleStatusScheduled
	past := now.Add(-time.Hour)
	due.ScheduledFor = &past
	_, err := svc.CreateArticle(due)
	require.NoError(t, err)

	future := baseArticle("future-article")
	future.Status = models.ArticleStatusScheduled
	later := now.Add(time.Hour)
	future.ScheduledFor = &later
	_, err = svc.CreateArticle(future)
	require.NoError(t, err)

	published, err := svc.PublishDueArticles(now)
	require.NoError(t, err)
	assert.Equal(t, 1, published)

	got, err := svc.GetArticleBySlug("due-article", false)
	require.NoError(t, err)
	assert.Equal(t, models.ArticleStatusPublished, got.Status)

	still, err := svc.GetArticleBySlug("future-article", false)
	require.NoError(t, err)
	assert.Equal(t, models.ArticleStatusScheduled, still.Status)
}

func TestUpdateArticlePartialAndResanitized(t *testing.T) {
	svc := newArticleService(t)

	_, err := svc.CreateArticle(baseArticle("breaking-news"))
	require.NoError(t, err)

	updated, err := svc.UpdateArticle("breaking-news", ArticleUpdate{
		Article: models.Article{
			Content: `<p>New</p><iframe src="evil"></iframe>`,
		},
	})
	require.NoError(t, err)
	assert.Contains(t, updated.Content, "<p>New</p>")
	assert.NotContains(t, updated.Content, "iframe")
	assert.Equal(t, "Title breaking-news", updated.Title)
}

func TestUpdateArticleFlags(t *testing.T) {
	svc := newArticleService(t)

	_, err := svc.CreateArticle(baseArticle("front-page"))
	require.NoError(t, err)

	yes := true
	updated, err := svc.UpdateArticle("front-page", ArticleUpdate{Featured: &yes, Trending: &yes})
	require.NoError(t, err)
	assert.True(t, updated.Featured)
	assert.True(t, updated.Trending)

	// An update that doesn't mention the flags leaves them alone.
	updated, err = svc.UpdateArticle("front-page", ArticleUpdate{
		Article: models.Article{Title: "Still front page"},
	})
	require.NoError(t, err)
	assert.True(t, updated.Featured)
	assert.True(t, updated.Trending)

	no := false
	updated, err = svc.UpdateArticle("front-page", ArticleUpdate{Featured: &no})
	require.NoError(t, err)
	assert.False(t, updated.Featured)
	assert.True(t, updated.Trending)
}
