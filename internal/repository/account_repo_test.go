package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cm-go/internal/infra/database"
	"cm-go/internal/model"
	"cm-go/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := database.GormConfig()
	cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "repo.db")), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func ptr[T any](v T) *T { return &v }

func TestUpsertByExternalID_KeepsLocalFields(t *testing.T) {
	repo := repository.NewAccountRepository(newSQLiteDB(t))
	ctx := context.Background()

	first, err := repo.UpsertByExternalID(ctx, &model.Account{
		ExternalID:     ptr(int64(42)),
		DisplayName:    "alice",
		AvatarURL:      ptr("https://avatars/old"),
		CommentEnabled: true,
		Role:           model.RoleUser,
	})
	require.NoError(t, err)

	_, err = repo.Update(ctx, first.ID, map[string]interface{}{
		"comment_enabled": false,
		"role":            model.RoleAdmin,
	})
	require.NoError(t, err)

	second, err := repo.UpsertByExternalID(ctx, &model.Account{
		ExternalID:     ptr(int64(42)),
		DisplayName:    "alice",
		AvatarURL:      ptr("https://avatars/new"),
		CommentEnabled: true,
		Role:           model.RoleUser,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "https://avatars/new", *second.AvatarURL)
	assert.False(t, second.CommentEnabled)
	assert.Equal(t, model.RoleAdmin, second.Role)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreate_DuplicateExternalID(t *testing.T) {
	repo := repository.NewAccountRepository(newSQLiteDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Account{ExternalID: ptr(int64(1)), DisplayName: "a", Role: model.RoleUser}))
	err := repo.Create(ctx, &model.Account{ExternalID: ptr(int64(1)), DisplayName: "b", Role: model.RoleUser})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)

	// 手动创建的账号可以没有 external_id
	require.NoError(t, repo.Create(ctx, &model.Account{DisplayName: "c", Role: model.RoleUser}))
	require.NoError(t, repo.Create(ctx, &model.Account{DisplayName: "d", Role: model.RoleUser}))

	exists, err := repo.ExistsByExternalID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetByDisplayName_PicksEarliest(t *testing.T) {
	repo := repository.NewAccountRepository(newSQLiteDB(t))
	ctx := context.Background()

	older := &model.Account{DisplayName: "twin", Role: model.RoleUser}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, &model.Account{DisplayName: "twin", Role: model.RoleUser}))

	got, err := repo.GetByDisplayName(ctx, "twin")
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)

	_, err = repo.GetByDisplayName(ctx, "nobody")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
