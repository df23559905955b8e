package services

import (
	"testing"
	"time"

	"github.com/dimitrije/collaborate-api/internal/database"
	"github.com/dimitrije/collaborate-api/internal/editor"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

const (
	testBaseURL  = "http://localhost:8080/api/v1"
	testMaxBytes = int64(1024)
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func setupMockDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &database.DB{Pool: mock}, mock
}

func newTestMaterializer(db *database.DB) *editor.Materializer {
	return editor.NewMaterializer(NewFileService(db, testMaxBytes), testBaseURL)
}
