package services

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

// CategoryServiceProvider defines the interface for category services.
type CategoryServiceProvider interface {
	CreateCategory(category models.Category) (models.Category, error)
	GetCategoryByID(id string) (models.Category, error)
	GetCategoryBySlug(slug string) (models.Category, error)
	ListCategories(status string) ([]models.Category, error)
	UpdateCategory(slug string, category models.Category) (models.Category, error)
	DeleteCategory(slug string) error
}

// CategoryService provides business logic for article categories.
type CategoryService struct {
	db *sql.DB
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *sql.DB) *CategoryService {
	return &CategoryService{db: db}
}

const categoryColumns = `id, name, name_en, slug, icon, description, color, sort_order, status, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.NameEn, &c.Slug, &c.Icon, &c.Description,
		&c.Color, &c.Order, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateCategory stores a new category; slugs are unique.
func (s *CategoryService) CreateCategory(category models.Category) (models.Category, error) {
	if category.Name == "" || category.Slug == "" {
		return models.Category{}, apperrors.Validation("name and slug are required")
	}

	category.ID = uuid.New().String()
	if category.Color == "" {
		category.Color = "#ef4444"
	}
	if category.Status == "" {
		category.Status = models.CategoryStatusActive
	}

	_, err := s.db.Exec(
		"INSERT INTO categories (id, name, name_en, slug, icon, description, color, sort_order, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		category.ID, category.Name, category.NameEn, category.Slug, category.Icon,
		category.Description, category.Color, category.Order, category.Status,
	)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return models.Category{}, apperrors.Conflict("a category with this slug already exists")
		}
		return models.Category{}, err
	}
	return s.GetCategoryByID(category.ID)
}

// GetCategoryByID retrieves one category by id.
func (s *CategoryService) GetCategoryByID(id string) (models.Category, error) {
	category, err := scanCategory(s.db.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return models.Category{}, apperrors.NotFound("category not found")
	}
	return category, err
}

// GetCategoryBySlug retrieves one category by slug.
func (s *CategoryService) GetCategoryBySlug(slug string) (models.Category, error) {
	category, err := scanCategory(s.db.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE slug = ?", slug))
	if err == sql.ErrNoRows {
		return models.Category{}, apperrors.NotFound("category not found")
	}
	return category, err
}

// ListCategories retrieves categories ordered by their configured sort order.
func (s *CategoryService) ListCategories(status string) ([]models.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories"
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY sort_order ASC, name ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// UpdateCategory applies a partial update to the category with the given slug.
func (s *CategoryService) UpdateCategory(slug string, update models.Category) (models.Category, error) {
	existing, err := s.GetCategoryBySlug(slug)
	if err != nil {
		return models.Category{}, err
	}

	if update.Name != "" {
		existing.Name = update.Name
	}
	if update.NameEn != "" {
		existing.NameEn = update.NameEn
	}
	if update.Slug != "" {
		existing.Slug = update.Slug
	}
	if update.Icon != "" {
		existing.Icon = update.Icon
	}
	if update.Description != "" {
		existing.Description = update.Description
	}
	if update.Color != "" {
		existing.Color = update.Color
	}
	if update.Order != 0 {
		existing.Order = update.Order
	}
	if update.Status != "" {
		existing.Status = update.Status
	}

	_, err = s.db.Exec(
		"UPDATE categories SET name = ?, name_en = ?, slug = ?, icon = ?, description = ?, color = ?, sort_order = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		existing.Name, existing.NameEn, existing.Slug, existing.Icon, existing.Description,
		existing.Color, existing.Order, existing.Status, existing.ID,
	)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return models.Category{}, apperrors.Conflict("a category with this slug already exists")
		}
		return models.Category{}, err
	}
	return s.GetCategoryByID(existing.ID)
}

// DeleteCategory removes the category with the given slug.
func (s *CategoryService) DeleteCategory(slug string) error {
	res, err := s.db.Exec("DELETE FROM categories WHERE slug = ?", slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("category not found")
	}
	return nil
}
