package ads

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/subslot/subslot-backend/pkg/db/models"
	"github.com/subslot/subslot-backend/pkg/enums"
)

func setupAdsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	adsTable := `
CREATE TABLE IF NOT EXISTS ads (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  platform_id TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  duration_value INTEGER NOT NULL CHECK (duration_value >= 1),
  duration_unit TEXT NOT NULL,
  contact_email TEXT NOT NULL,
  user_id TEXT NOT NULL,
  created_by TEXT NOT NULL,
  updated_by TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  phone TEXT,
  address TEXT,
  city TEXT,
  state TEXT,
  zip TEXT,
  role TEXT NOT NULL DEFAULT 'user',
  is_active INTEGER NOT NULL DEFAULT 1,
  is_verified INTEGER NOT NULL DEFAULT 0,
  otp TEXT,
  otp_expires DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(adsTable).Error)
	require.NoError(t, db.Exec(usersTable).Error)
	require.NoError(t, db.Exec("DELETE FROM ads").Error)
	require.NoError(t, db.Exec("DELETE FROM users").Error)
	return db
}

func seedAd(t *testing.T, repo *Repository, owner uuid.UUID, title string, unit enums.DurationUnit, active bool, createdAt time.Time) *models.Ad {
	t.Helper()
	ad := &models.Ad{
		Title:         title,
		Description:   "desc",
		PlatformID:    uuid.New(),
		Price:         decimal.NewFromFloat(9.99),
		DurationValue: 1,
		DurationUnit:  unit,
		ContactEmail:  "owner@example.com",
		UserID:        owner,
		CreatedBy:     owner,
		UpdatedBy:     owner,
		IsActive:      active,
	}
	require.NoError(t, repo.Create(context.Background(), ad))
	require.NoError(t, repo.db.Model(ad).UpdateColumn("created_at", createdAt).Error)
	ad.CreatedAt = createdAt
	return ad
}

func TestListActiveFiltersAndSorts(t *testing.T) {
	db := setupAdsTestDB(t)
	repo := NewRepository(db)
	owner := uuid.New()
	base := time.Now().Add(-time.Hour)

	seedAd(t, repo, owner, "Netflix slot", enums.DurationMonth, true, base)
	seedAd(t, repo, owner, "Spotify family", enums.DurationMonth, true, base.Add(time.Minute))
	seedAd(t, repo, owner, "Hidden listing", enums.DurationMonth, false, base.Add(2*time.Minute))

	list, err := repo.ListActive(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Spotify family", list[0].Title)
	assert.Equal(t, "Netflix slot", list[1].Title)
}

func TestListActiveSearchIsCaseInsensitiveLiteral(t *testing.T) {
	db := setupAdsTestDB(t)
	repo := NewRepository(db)
	owner := uuid.New()
	base := time.Now().Add(-time.Hour)

	seedAd(t, repo, owner, "Netflix 100% premium", enums.DurationMonth, true, base)
	seedAd(t, repo, owner, "Netflix 100th anniversary", enums.DurationMonth, true, base.Add(time.Minute))
	seedAd(t, repo, owner, "Disney_plus slot", enums.DurationMonth, true, base.Add(2*time.Minute))
	seedAd(t, repo, owner, "Disneyxplus other", enums.DurationMonth, true, base.Add(3*time.Minute))

	ctx := context.Background()

	byCase, err := repo.ListActive(ctx, "NETFLIX")
	require.NoError(t, err)
	assert.Len(t, byCase, 2)

	// "%" must match only the literal percent sign
	byPercent, err := repo.ListActive(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, byPercent, 1)
	assert.Equal(t, "Netflix 100% premium", byPercent[0].Title)

	// "_" must not act as a single-character wildcard
	byUnderscore, err := repo.ListActive(ctx, "Disney_plus")
	require.NoError(t, err)
	require.Len(t, byUnderscore, 1)
	assert.Equal(t, "Disney_plus slot", byUnderscore[0].Title)
}

func TestListActiveByUnitBucketWindow(t *testing.T) {
	db := setupAdsTestDB(t)
	repo := NewRepository(db)
	owner := uuid.New()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 6; i++ {
		seedAd(t, repo, owner, "week ad", enums.DurationWeek, true, base.Add(time.Duration(i)*time.Minute))
	}
	seedAd(t, repo, owner, "inactive week ad", enums.DurationWeek, false, base.Add(time.Hour))
	seedAd(t, repo, owner, "month ad", enums.DurationMonth, true, base)

	list, err := repo.ListActiveByUnit(context.Background(), enums.DurationWeek, 4)
	require.NoError(t, err)
	require.Len(t, list, 4)
	for _, ad := range list {
		assert.Equal(t, enums.DurationWeek, ad.DurationUnit)
		assert.True(t, ad.IsActive)
	}
	assert.True(t, list[0].CreatedAt.After(list[3].CreatedAt))
}

func TestFindOwnedScopesToOwner(t *testing.T) {
	db := setupAdsTestDB(t)
	repo := NewRepository(db)
	owner := uuid.New()
	other := uuid.New()
	ad := seedAd(t, repo, owner, "mine", enums.DurationMonth, true, time.Now())

	ctx := context.Background()

	found, err := repo.FindOwned(ctx, owner, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, ad.ID, found.ID)

	_, err = repo.FindOwned(ctx, other, ad.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindOwned(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindByIDIgnoresActiveState(t *testing.T) {
	db := setupAdsTestDB(t)
	repo := NewRepository(db)
	ad := seedAd(t, repo, uuid.New(), "inactive", enums.DurationMonth, false, time.Now())

	found, err := repo.FindByID(context.Background(), ad.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestListOwnedIncludesInactive(t *testing.T) {
	db := setupAdsTestDB(t)
	repo := NewRepository(db)
	owner := uuid.New()
	base := time.Now().Add(-time.Hour)

	seedAd(t, repo, owner, "active", enums.DurationMonth, true, base)
	seedAd(t, repo, owner, "inactive", enums.DurationMonth, false, base.Add(time.Minute))
	seedAd(t, repo, uuid.New(), "other owner", enums.DurationMonth, true, base)

	list, err := repo.ListOwned(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "inactive", list[0].Title)
}
