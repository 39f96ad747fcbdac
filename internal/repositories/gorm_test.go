package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"katalog/internal/models"
)

func newGORMRepo(t *testing.T) *GORMItemRepository {
	t.Helper()
	// A named shared-cache memory database keeps every pooled
	// connection of one test on the same schema without leaking state
	// across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	repo, err := NewGORMItemRepository(db)
	require.NoError(t, err)
	return repo
}

func TestGORMRepositoryPutGet(t *testing.T) {
	repo := newGORMRepo(t)
	ctx := context.Background()

	item := testItem("id-1", "Widget")
	desc := "A fine widget"
	item.Description = &desc
	item.Metadata = models.Metadata{"category": "tools"}
	require.NoError(t, repo.Put(ctx, item))

	got, err := repo.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "A fine widget", *got.Description)
	assert.Equal(t, models.Metadata{"category": "tools"}, got.Metadata)
	assert.True(t, got.IsAvailable)
}

func TestGORMRepositoryGetMissing(t *testing.T) {
	repo := newGORMRepo(t)

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestGORMRepositoryPutOverwrites(t *testing.T) {
	repo := newGORMRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, testItem("id-1", "Widget")))
	updated := testItem("id-1", "Gadget")
	updated.Price = 25.0
	require.NoError(t, repo.Put(ctx, updated))

	got, err := repo.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Gadget", got.Name)
	assert.Equal(t, 25.0, got.Price)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGORMRepositoryDelete(t *testing.T) {
	repo := newGORMRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, testItem("id-1", "Widget")))
	require.NoError(t, repo.Delete(ctx, "id-1"))

	_, err := repo.Get(ctx, "id-1")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "id-1"), ErrItemNotFound)
}

func TestGORMRepositoryAll(t *testing.T) {
	repo := newGORMRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, testItem("id-1", "Widget")))
	require.NoError(t, repo.Put(ctx, testItem("id-2", "Gadget")))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
