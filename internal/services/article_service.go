package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
	"github.com/sfares/newsroom-be/internal/sanitize"
)

// ArticleFilter narrows an article listing.
type ArticleFilter struct {
	CategorySlug string
	Featured     bool
	Trending     bool
	Status       string
	Search       string // Matched against title and excerpt
	ExcludeSlug  string
	Page         int
	Limit        int
}

// ArticleUpdate is a partial article update. The flags are pointers so that
// clearing them can be told apart from leaving them out.
type ArticleUpdate struct {
	models.Article
	Featured *bool
	Trending *bool
}

// ArticleServiceProvider defines the interface for article services.
type ArticleServiceProvider interface {
	CreateArticle(article models.Article) (models.Article, error)
	GetArticleBySlug(slug string, countView bool) (models.Article, error)
	ListArticles(filter ArticleFilter) ([]models.Article, int, error)
	UpdateArticle(slug string, update ArticleUpdate) (models.Article, error)
	DeleteArticle(slug string) error
	PublishDueArticles(now time.Time) (int, error)
}

// ArticleService provides business logic for news articles. Rich text fields
// pass through the sanitizer on every write.
type ArticleService struct {
	db         *sql.DB
	categories CategoryServiceProvider
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *sql.DB, categories CategoryServiceProvider) *ArticleService {
	return &ArticleService{db: db, categories: categories}
}

const articleColumns = `id, title, title_en, excerpt, content, image, category_id, category_slug, author,
	date, slug, featured, trending, status, scheduled_for, tags_json, views, reading_time,
	seo_json, featured_image_json, created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }) (models.Article, error) {
	var a models.Article
	err := row.Scan(&a.ID, &a.Title, &a.TitleEn, &a.Excerpt, &a.Content, &a.Image,
		&a.CategoryID, &a.CategorySlug, &a.Author, &a.Date, &a.Slug, &a.Featured, &a.Trending,
		&a.Status, &a.ScheduledFor, &a.TagsJSON, &a.Views, &a.ReadingTime,
		&a.SEOJSON, &a.ImageJSON, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Article{}, err
	}
	a.PrepareForAPI()
	return a, nil
}

// CreateArticle sanitizes and stores a new article. The category may be given
// by id or slug; a duplicate slug fails with a conflict.
func (s *ArticleService) CreateArticle(article models.Article) (models.Article, error) {
	if article.Title == "" || article.Excerpt == "" || article.Slug == "" || article.Author == "" {
		return models.Article{}, apperrors.Validation("title, excerpt, slug and author are required")
	}

	article.ID = uuid.New().String()
	article.Content = sanitize.RichText(article.Content)
	article.Excerpt = sanitize.RichText(article.Excerpt)
	if article.Status == "" {
		article.Status = models.ArticleStatusDraft
	}
	if article.Date.IsZero() {
		article.Date = time.Now()
	}
	s.resolveCategory(&article)
	article.PrepareForDB()

	_, err := s.db.Exec(`
		INSERT INTO articles (id, title, title_en, excerpt, content, image, category_id, category_slug,
			author, date, slug, featured, trending, status, scheduled_for, tags_json, reading_time,
			seo_json, featured_image_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID, article.Title, article.TitleEn, article.Excerpt, article.Content, article.Image,
		article.CategoryID, article.CategorySlug, article.Author, article.Date, article.Slug,
		article.Featured, article.Trending, article.Status, article.ScheduledFor, article.TagsJSON,
		article.ReadingTime, article.SEOJSON, article.ImageJSON,
	)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return models.Article{}, apperrors.Conflict("an article with this slug already exists")
		}
		return models.Article{}, err
	}
	return s.GetArticleBySlug(article.Slug, false)
}

// GetArticleBySlug retrieves one article, optionally counting the read as a
// page view, and attaches its category.
func (s *ArticleService) GetArticleBySlug(slug string, countView bool) (models.Article, error) {
	article, err := scanArticle(s.db.QueryRow("SELECT "+articleColumns+" FROM articles WHERE slug = ?", slug))
	if err == sql.ErrNoRows {
		return models.Article{}, apperrors.NotFound("article not found")
	}
	if err != nil {
		return models.Article{}, err
	}

	if countView {
		if _, err := s.db.Exec("UPDATE articles SET views = views + 1 WHERE id = ?", article.ID); err == nil {
			article.Views++
		}
	}

	s.attachCategory(&article)
	return article, nil
}

// ListArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) ListArticles(filter ArticleFilter) ([]models.Article, int, error) {
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	where := "1=1"
	args := []any{}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.CategorySlug != "" {
		where += " AND category_slug = ?"
		args = append(args, filter.CategorySlug)
	}
	if filter.Featured {
		where += " AND featured = 1"
	}
	if filter.Trending {
		where += " AND trending = 1"
	}
	if filter.Search != "" {
		// Cap the pattern length; LIKE wildcards in user input are escaped.
		pattern := "%" + escapeLike(truncateString(filter.Search, 100)) + "%"
		where += " AND (title LIKE ? ESCAPE '\\' OR excerpt LIKE ? ESCAPE '\\')"
		args = append(args, pattern, pattern)
	}
	if filter.ExcludeSlug != "" {
		where += " AND slug != ?"
		args = append(args, filter.ExcludeSlug)
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM articles WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	rows, err := s.db.Query("SELECT "+articleColumns+" FROM articles WHERE "+where+" ORDER BY date DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	s.attachCategories(articles)
	return articles, total, nil
}

// UpdateArticle applies a partial update to the article with the given slug.
// Rich text fields are re-sanitized.
func (s *ArticleService) UpdateArticle(slug string, update ArticleUpdate) (models.Article, error) {
	existing, err := s.GetArticleBySlug(slug, false)
	if err != nil {
		return models.Article{}, err
	}

	if update.Featured != nil {
		existing.Featured = *update.Featured
	}
	if update.Trending != nil {
		existing.Trending = *update.Trending
	}

	if update.Title != "" {
		existing.Title = update.Title
	}
	if update.TitleEn != "" {
		existing.TitleEn = update.TitleEn
	}
	if update.Excerpt != "" {
		existing.Excerpt = sanitize.RichText(update.Excerpt)
	}
	if update.Content != "" {
		existing.Content = sanitize.RichText(update.Content)
	}
	if update.Image != "" {
		existing.Image = update.Image
	}
	if update.Author != "" {
		existing.Author = update.Author
	}
	if !update.Date.IsZero() {
		existing.Date = update.Date
	}
	if update.Slug != "" {
		existing.Slug = update.Slug
	}
	if update.Status != "" {
		switch update.Status {
		case models.ArticleStatusDraft, models.ArticleStatusPublished, models.ArticleStatusScheduled:
			existing.Status = update.Status
		default:
			return models.Article{}, apperrors.Validation("invalid article status")
		}
	}
	if update.ScheduledFor != nil {
		existing.ScheduledFor = update.ScheduledFor
	}
	if update.Tags != nil {
		existing.Tags = update.Tags
	}
	if update.ReadingTime != 0 {
		existing.ReadingTime = update.ReadingTime
	}
	if update.SEO != (models.SEO{}) {
		existing.SEO = update.SEO
	}
	if update.FeaturedImage != nil {
		existing.FeaturedImage = update.FeaturedImage
	}
	if update.CategoryID != "" || update.CategorySlug != "" {
		existing.CategoryID = update.CategoryID
		existing.CategorySlug = update.CategorySlug
		s.resolveCategory(&existing)
	}

	existing.Category = nil
	existing.PrepareForDB()

	_, err = s.db.Exec(`
		UPDATE articles SET title = ?, title_en = ?, excerpt = ?, content = ?, image = ?,
			category_id = ?, category_slug = ?, author = ?, date = ?, slug = ?, featured = ?,
			trending = ?, status = ?, scheduled_for = ?, tags_json = ?, reading_time = ?,
			seo_json = ?, featured_image_json = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		existing.Title, existing.TitleEn, existing.Excerpt, existing.Content, existing.Image,
		existing.CategoryID, existing.CategorySlug, existing.Author, existing.Date, existing.Slug,
		existing.Featured, existing.Trending, existing.Status, existing.ScheduledFor,
		existing.TagsJSON, existing.ReadingTime, existing.SEOJSON, existing.ImageJSON, existing.ID,
	)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return models.Article{}, apperrors.Conflict("an article with this slug already exists")
		}
		return models.Article{}, err
	}
	return s.GetArticleBySlug(existing.Slug, false)
}

// DeleteArticle removes the article with the given slug.
func (s *ArticleService) DeleteArticle(slug string) error {
	res, err := s.db.Exec("DELETE FROM articles WHERE slug = ?", slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("article not found")
	}
	return nil
}

// PublishDueArticles flips scheduled articles whose time has arrived to
// published, returning how many changed. Invoked by the scheduler.
func (s *ArticleService) PublishDueArticles(now time.Time) (int, error) {
	res, err := s.db.Exec(
		"UPDATE articles SET status = ?, date = ?, updated_at = CURRENT_TIMESTAMP WHERE status = ? AND scheduled_for IS NOT NULL AND scheduled_for <= ?",
		models.ArticleStatusPublished, now, models.ArticleStatusScheduled, now,
	)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// resolveCategory accepts a category id or slug and fills both fields when
// the category exists.
func (s *ArticleService) resolveCategory(article *models.Article) {
	input := article.CategoryID
	if input == "" {
		input = article.CategorySlug
	}
	if input == "" || s.categories == nil {
		return
	}

	if cat, err := s.categories.GetCategoryByID(input); err == nil {
		article.CategoryID = cat.ID
		article.CategorySlug = cat.Slug
		return
	}
	if cat, err := s.categories.GetCategoryBySlug(input); err == nil {
		article.CategoryID = cat.ID
		article.CategorySlug = cat.Slug
		return
	}
	// Unknown category: keep the slug as given.
	article.CategorySlug = input
	article.CategoryID = ""
}

func (s *ArticleService) attachCategory(article *models.Article) {
	if s.categories == nil || article.CategorySlug == "" {
		return
	}
	if cat, err := s.categories.GetCategoryBySlug(article.CategorySlug); err == nil {
		article.Category = &cat
	}
}

func (s *ArticleService) attachCategories(articles []models.Article) {
	if s.categories == nil {
		return
	}
	cache := map[string]*models.Category{}
	for i := range articles {
		slug := articles[i].CategorySlug
		if slug == "" {
			continue
		}
		if cat, ok := cache[slug]; ok {
			articles[i].Category = cat
			continue
		}
		if cat, err := s.categories.GetCategoryBySlug(slug); err == nil {
			c := cat
			cache[slug] = &c
			articles[i].Category = &c
		} else {
			cache[slug] = nil
		}
	}
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
