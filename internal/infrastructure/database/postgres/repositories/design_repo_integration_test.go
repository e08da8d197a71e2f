//go:build integration

package repositories_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/WellNodal/internal/domain/wellbore"
	"github.com/turtacn/WellNodal/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// Requires a running PostgreSQL with the schema applied:
//   WELLNODAL_TEST_DSN=postgres://... go test -tags integration ./...

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("WELLNODAL_TEST_DSN")
	if dsn == "" {
		t.Skip("WELLNODAL_TEST_DSN not set")
	}
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createWell(t *testing.T, db *sql.DB) common.ID {
	t.Helper()
	w, err := wellbore.NewWell("integration-"+common.NewID().String()[:8], "testfield", "test")
	require.NoError(t, err)
	require.NoError(t, repositories.NewWellRepository(db, logging.NewNopLogger()).Create(context.Background(), w))
	return w.ID
}

func TestDesignRepositorySaveAndGet(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := repositories.NewDesignRepository(db, logging.NewNopLogger())
	wellID := createWell(t, db)

	d := wellbore.NewDesign(wellID)
	require.NoError(t, d.AddRow(wellbore.ComponentRow{Kind: wellbore.RowKindBHA, Top: 800, Bottom: 1000, InternalDiameter: 2.5}))
	require.NoError(t, d.SetNodalPoint(850))

	require.NoError(t, repo.Save(ctx, d))
	assert.Equal(t, int64(1), d.Revision)

	loaded, err := repo.Get(ctx, wellID)
	require.NoError(t, err)
	assert.Equal(t, d.Revision, loaded.Revision)
	assert.Equal(t, 850.0, loaded.NodalPoint)
	require.Len(t, loaded.BHARows, 1)
	assert.Equal(t, 2.5, loaded.BHARows[0].InternalDiameter)
}

func TestDesignRepositoryOptimisticConcurrency(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := repositories.NewDesignRepository(db, logging.NewNopLogger())
	wellID := createWell(t, db)

	d := wellbore.NewDesign(wellID)
	require.NoError(t, repo.Save(ctx, d))

	first, err := repo.Get(ctx, wellID)
	require.NoError(t, err)
	second, err := repo.Get(ctx, wellID)
	require.NoError(t, err)

	require.NoError(t, first.SetNodalPoint(500))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.SetNodalPoint(900))
	err = repo.Save(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDesignRevisionOld))
}

func TestDesignRepositoryGetMissing(t *testing.T) {
	db := testDB(t)
	_, err := repositories.NewDesignRepository(db, logging.NewNopLogger()).
		Get(context.Background(), common.NewID())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDesignNotFound))
}
