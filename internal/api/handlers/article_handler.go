package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sfares/newsroom-be/internal/models"
	"github.com/sfares/newsroom-be/internal/services"
)

// ArticleHandler handles HTTP requests for news articles.
type ArticleHandler struct {
	service services.ArticleServiceProvider
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(service services.ArticleServiceProvider) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// ArticlePayload defines the writable fields of an article.
type ArticlePayload struct {
	Title         string                `json:"title" validate:"required"`
	TitleEn       string                `json:"titleEn"`
	Excerpt       string                `json:"excerpt"`
	Content       string                `json:"content" validate:"required"`
	Image         string                `json:"image"`
	Category      string                `json:"category"` // Category id or slug
	Author        string                `json:"author" validate:"required,max=100"`
	Slug          string                `json:"slug" validate:"required,max=200"`
	Featured      *bool                 `json:"featured"`
	Trending      *bool                 `json:"trending"`
	Status        string                `json:"status" validate:"omitempty,oneof=draft published scheduled"`
	ScheduledFor  *string               `json:"scheduledFor"`
	Tags          []string              `json:"tags"`
	ReadingTime   int                   `json:"readingTime"`
	SEO           models.SEO            `json:"seo"`
	FeaturedImage *models.FeaturedImage `json:"featuredImage"`
}

func (p *ArticlePayload) toModel() models.Article {
	article := models.Article{
		Title:         p.Title,
		TitleEn:       p.TitleEn,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		Image:         p.Image,
		CategoryID:    p.Category,
		Author:        p.Author,
		Slug:          p.Slug,
		Status:        p.Status,
		Tags:          p.Tags,
		ReadingTime:   p.ReadingTime,
		SEO:           p.SEO,
		FeaturedImage: p.FeaturedImage,
	}
	if p.Featured != nil {
		article.Featured = *p.Featured
	}
	if p.Trending != nil {
		article.Trending = *p.Trending
	}
	if p.ScheduledFor != nil {
		if at, err := parseTime(*p.ScheduledFor); err == nil {
			article.ScheduledFor = &at
		}
	}
	return article
}

func (p *ArticlePayload) toUpdate() services.ArticleUpdate {
	return services.ArticleUpdate{
		Article:  p.toModel(),
		Featured: p.Featured,
		Trending: p.Trending,
	}
}

// List handles listing articles with filters and pagination.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	filter := services.ArticleFilter{
		CategorySlug: q.Get("category"),
		Featured:     q.Get("featured") == "true",
		Trending:     q.Get("trending") == "true",
		Status:       q.Get("status"),
		Search:       q.Get("search"),
		ExcludeSlug:  q.Get("exclude"),
		Page:         page,
		Limit:        limit,
	}

	articles, total, err := h.service.ListArticles(filter)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, "articles retrieved", map[string]any{
		"articles": articles,
		"total":    total,
	})
}

// Get handles retrieving an article by slug, counting the view.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	countView := r.URL.Query().Get("countView") != "false"
	article, err := h.service.GetArticleBySlug(chi.URLParam(r, "slug"), countView)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "article retrieved", article)
}

// Create handles publishing a new article.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload ArticlePayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	article, err := h.service.CreateArticle(payload.toModel())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "article created", article)
}

// Update handles partial updates to an existing article. Absent fields are
// left unchanged, so the payload skips required-field validation.
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload ArticlePayload
	if err := decodeBody(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	article, err := h.service.UpdateArticle(chi.URLParam(r, "slug"), payload.toUpdate())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "article updated", article)
}

// Delete handles removing an article.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteArticle(chi.URLParam(r, "slug")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "article deleted", nil)
}
