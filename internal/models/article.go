package models

import (
	"encoding/json"
	"time"
)

// Article statuses.
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
	ArticleStatusScheduled = "scheduled"
)

// SEO holds per-article metadata for search engines.
type SEO struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	CanonicalURL    string `json:"canonicalUrl,omitempty"`
}

// FeaturedImage describes the article's lead image.
type FeaturedImage struct {
	URL string `json:"url,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// Article represents a news article. Content and excerpt are stored
// sanitized; slug is the public identifier.
type Article struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	TitleEn       string         `json:"titleEn,omitempty"`
	Excerpt       string         `json:"excerpt"`
	Content       string         `json:"content"`
	Image         string         `json:"image,omitempty"`
	CategoryID    string         `json:"categoryId,omitempty"`
	CategorySlug  string         `json:"categorySlug"`
	Category      *Category      `json:"category,omitempty"` // Attached on reads
	Author        string         `json:"author"`
	Date          time.Time      `json:"date"`
	Slug          string         `json:"slug"`
	Featured      bool           `json:"featured"`
	Trending      bool           `json:"trending"`
	Status        string         `json:"status"`
	ScheduledFor  *time.Time     `json:"scheduledFor,omitempty"`
	Tags          []string       `json:"tags"`
	TagsJSON      string         `json:"-"` // Stored as JSON array string
	Views         int64          `json:"views"`
	ReadingTime   int            `json:"readingTime"`
	SEO           SEO            `json:"seo"`
	SEOJSON       string         `json:"-"`
	FeaturedImage *FeaturedImage `json:"featuredImage,omitempty"`
	ImageJSON     string         `json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// PrepareForDB marshals the compound fields into their JSON column form.
func (a *Article) PrepareForDB() {
	if a.Tags == nil {
		a.Tags = []string{}
	}
	tags, _ := json.Marshal(a.Tags)
	a.TagsJSON = string(tags)

	seo, _ := json.Marshal(a.SEO)
	a.SEOJSON = string(seo)

	if a.FeaturedImage != nil {
		img, _ := json.Marshal(a.FeaturedImage)
		a.ImageJSON = string(img)
	}
}

// PrepareForAPI unmarshals the JSON columns back into their struct form.
func (a *Article) PrepareForAPI() {
	a.Tags = []string{}
	if a.TagsJSON != "" {
		_ = json.Unmarshal([]byte(a.TagsJSON), &a.Tags)
	}
	if a.SEOJSON != "" {
		_ = json.Unmarshal([]byte(a.SEOJSON), &a.SEO)
	}
	if a.ImageJSON != "" {
		var img FeaturedImage
		if json.Unmarshal([]byte(a.ImageJSON), &img) == nil {
			a.FeaturedImage = &img
		}
	}
}
