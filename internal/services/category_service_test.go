package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

func TestCreateCategoryDefaultsAndUniqueSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	created, err := svc.CreateCategory(models.Category{Name: "Политика", NameEn: "Politics", Slug: "politics"})
	require.NoError(t, err)
	assert.Equal(t, "#ef4444", created.Color)
	assert.Equal(t, models.CategoryStatusActive, created.Status)

	_, err = svc.CreateCategory(models.Category{Name: "Dup", Slug: "politics"})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Status)
}

func TestListCategoriesSortOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	_, err := svc.CreateCategory(models.Category{Name: "Culture", Slug: "culture", Order: 2})
	require.NoError(t, err)
	_, err = svc.CreateCategory(models.Category{Name: "Politics", Slug: "politics", Order: 1})
	require.NoError(t, err)
	_, err = svc.CreateCategory(models.Category{Name: "Archive", Slug: "archive", Order: 3, Status: models.CategoryStatusInactive})
	require.NoError(t, err)

	all, err := svc.ListCategories("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "politics", all[0].Slug)
	assert.Equal(t, "culture", all[1].Slug)

	active, err := svc.ListCategories(models.CategoryStatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestUpdateCategoryPartialAndRename(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	_, err := svc.CreateCategory(models.Category{Name: "Sport", Slug: "sport", Color: "#22c55e"})
	require.NoError(t, err)

	updated, err := svc.UpdateCategory("sport", models.Category{Slug: "sports", Description: "Match reports"})
	require.NoError(t, err)
	assert.Equal(t, "sports", updated.Slug)
	assert.Equal(t, "Match reports", updated.Description)
	assert.Equal(t, "#22c55e", updated.Color)

	_, err = svc.GetCategoryBySlug("sport")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestDeleteCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	_, err := svc.CreateCategory(models.Category{Name: "Tech", Slug: "tech"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory("tech"))

	err = svc.DeleteCategory("tech")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}
