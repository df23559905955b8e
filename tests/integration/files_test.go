package integration

import (
	"context"
	"testing"
	"time"

	"github.com/dimitrije/collaborate-api/internal/editor"
	"github.com/dimitrije/collaborate-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileService_Integration_UploadDraft(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := newTestServices(tdb.DB)
	ctx := context.Background()
	userID := uuid.New()

	first, err := svc.files.UploadDraft(ctx, userID, services.DraftUpload{FileName: "a.txt", MimeType: "text/plain", Content: []byte("one")})
	require.NoError(t, err)
	assert.Positive(t, first.ItemID)
	assert.Equal(t, "/", first.FilePath)

	again, err := svc.files.UploadDraft(ctx, userID, services.DraftUpload{ItemID: first.ItemID, FileName: "a.txt", MimeType: "text/plain", Content: []byte("two!")})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, int64(4), again.Size)

	f, err := svc.files.GetDraftFile(ctx, userID, first.ItemID, "/", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("two!"), f.Content)

	_, err = svc.files.GetDraftFile(ctx, uuid.New(), first.ItemID, "/", "a.txt")
	assert.ErrorIs(t, err, services.ErrFileNotFound)

	_, err = svc.files.UploadDraft(ctx, uuid.New(), services.DraftUpload{ItemID: first.ItemID, FileName: "a.txt", Content: []byte("x")})
	assert.ErrorIs(t, err, services.ErrDraftNotOwned)

	listed, err := svc.files.ListArea(ctx, editor.Area{Component: editor.DraftComponent, FileArea: editor.DraftArea, ItemID: first.ItemID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Nil(t, listed[0].Content)
}

func TestFileService_Integration_CleanupDrafts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := newTestServices(tdb.DB)
	ctx := context.Background()

	_, err := svc.files.UploadDraft(ctx, uuid.New(), services.DraftUpload{FileName: "old.txt", Content: []byte("x")})
	require.NoError(t, err)

	n, err := svc.files.CleanupDrafts(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = svc.files.CleanupDrafts(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
