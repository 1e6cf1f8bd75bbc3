package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

func TestCreateSignEnforcesUniqueSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewHoroscopeService(db)

	_, err := svc.CreateSign(models.HoroscopeSign{Name: "Овен", NameEn: "Aries", Slug: "aries", DateRange: "Mar 21 - Apr 19"})
	require.NoError(t, err)

	_, err = svc.CreateSign(models.HoroscopeSign{Name: "Другой", NameEn: "Aries Again", Slug: "aries"})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Status)
}

func TestUpdateSignPartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewHoroscopeService(db)

	_, err := svc.CreateSign(models.HoroscopeSign{Name: "Телец", NameEn: "Taurus", Slug: "taurus", Symbol: "♉"})
	require.NoError(t, err)

	updated, err := svc.UpdateSign("taurus", models.HoroscopeSign{DateRange: "Apr 20 - May 20"})
	require.NoError(t, err)
	assert.Equal(t, "Apr 20 - May 20", updated.DateRange)
	assert.Equal(t, "Taurus", updated.NameEn)
	assert.Equal(t, "♉", updated.Symbol)
}

func TestDeleteSign(t *testing.T) {
	db := newTestDB(t)
	svc := NewHoroscopeService(db)

	_, err := svc.CreateSign(models.HoroscopeSign{Name: "Близнецы", NameEn: "Gemini", Slug: "gemini"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSign("gemini"))

	_, err = svc.GetSignBySlug("gemini")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)

	err = svc.DeleteSign("gemini")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}
