package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'reader',
		status TEXT NOT NULL DEFAULT 'active',
		refresh_token TEXT NOT NULL DEFAULT '',
		reset_token TEXT NOT NULL DEFAULT '',
		reset_expiry DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS articles (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		title_en TEXT NOT NULL DEFAULT '',
		excerpt TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		category_id TEXT NOT NULL DEFAULT '',
		category_slug TEXT NOT NULL,
		author TEXT NOT NULL,
		date DATETIME NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		featured INTEGER NOT NULL DEFAULT 0,
		trending INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'draft',
		scheduled_for DATETIME,
		tags_json TEXT NOT NULL DEFAULT '[]',
		views INTEGER NOT NULL DEFAULT 0,
		reading_time INTEGER NOT NULL DEFAULT 0,
		seo_json TEXT NOT NULL DEFAULT '{}',
		featured_image_json TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_articles_date ON articles(date DESC);
	CREATE INDEX IF NOT EXISTS idx_articles_status_date ON articles(status, date DESC);
	CREATE INDEX IF NOT EXISTS idx_articles_category_date ON articles(category_slug, date DESC);

	CREATE TABLE IF NOT EXISTS categories (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		name_en TEXT NOT NULL DEFAULT '',
		slug TEXT NOT NULL UNIQUE,
		icon TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '#ef4444',
		sort_order INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_categories_status_order ON categories(status, sort_order);

	CREATE TABLE IF NOT EXISTS comments (
		id TEXT NOT NULL PRIMARY KEY,
		article_id TEXT NOT NULL,
		author TEXT NOT NULL,
		content TEXT NOT NULL,
		likes INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_comments_article_status ON comments(article_id, status);

	CREATE TABLE IF NOT EXISTS polls (
		id TEXT NOT NULL PRIMARY KEY,
		question TEXT NOT NULL,
		options_json TEXT NOT NULL DEFAULT '[]',
		status TEXT NOT NULL DEFAULT 'active',
		scheduled_for DATETIME,
		votes_json TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS reactions (
		id TEXT NOT NULL PRIMARY KEY,
		article_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(article_id, user_id)
	);
	CREATE INDEX IF NOT EXISTS idx_reactions_article_type ON reactions(article_id, type);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		type TEXT NOT NULL,
		read INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications(user_id, read);

	CREATE TABLE IF NOT EXISTS ads (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'banner',
		placement TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		impressions INTEGER NOT NULL DEFAULT 0,
		clicks INTEGER NOT NULL DEFAULT 0,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_ads_status_placement ON ads(status, placement);

	CREATE TABLE IF NOT EXISTS media (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		url TEXT NOT NULL,
		usage INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_media_type ON media(type);

	CREATE TABLE IF NOT EXISTS analytics (
		id TEXT NOT NULL PRIMARY KEY,
		date DATETIME NOT NULL,
		page_views INTEGER NOT NULL DEFAULT 0,
		unique_users INTEGER NOT NULL DEFAULT 0,
		sessions INTEGER NOT NULL DEFAULT 0,
		bounce_rate REAL NOT NULL DEFAULT 0,
		avg_session_duration REAL NOT NULL DEFAULT 0,
		breakdown_json TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_analytics_date ON analytics(date DESC);

	CREATE TABLE IF NOT EXISTS settings (
		id TEXT NOT NULL PRIMARY KEY,
		site_info_json TEXT NOT NULL DEFAULT '{}',
		notifications_json TEXT NOT NULL DEFAULT '{}',
		publishing_json TEXT NOT NULL DEFAULT '{}',
		security_json TEXT NOT NULL DEFAULT '{}',
		seo_json TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS reading_history (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		slug TEXT NOT NULL,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		read_at DATETIME NOT NULL,
		UNIQUE(user_id, slug)
	);
	CREATE INDEX IF NOT EXISTS idx_history_user_time ON reading_history(user_id, read_at DESC);

	CREATE TABLE IF NOT EXISTS horoscope_signs (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		name_en TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		icon TEXT NOT NULL DEFAULT '',
		symbol TEXT NOT NULL DEFAULT '',
		date_range TEXT NOT NULL DEFAULT ''
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
