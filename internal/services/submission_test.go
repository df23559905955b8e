package services

import (
	"context"
	"testing"
	"time"

	"github.com/dimitrije/collaborate-api/internal/editor"
	"github.com/dimitrije/collaborate-api/internal/logger"
	"github.com/dimitrije/collaborate-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSubmissionService(t *testing.T) (*SubmissionService, pgxmock.PgxPoolIface) {
	t.Helper()
	db, mock := setupMockDB(t)
	svc := NewSubmissionService(db, newTestMaterializer(db), testMaxBytes, logger.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc, mock
}

func TestSubmissionService_FindSubmission(t *testing.T) {
	svc, mock := setupSubmissionService(t)
	userID := uuid.New()

	rows := pgxmock.NewRows([]string{
		"id", "collaborate_id", "user_id", "page", "submission", "submission_format", "timecreated", "timemodified",
	}).AddRow(int64(10), int64(5), userID, models.PageA, "<p>mine</p>", models.FormatHTML, fixedNow.Unix(), int64(0))

	mock.ExpectQuery(`SELECT .+ FROM collaborate_submissions`).
		WithArgs(int64(5), userID, "a").
		WillReturnRows(rows)

	sub, err := svc.FindSubmission(context.Background(), 5, userID, models.PageA)

	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, int64(10), sub.ID)
	assert.Equal(t, models.PageA, sub.Page)
	assert.Equal(t, "<p>mine</p>", sub.Submission)
	assert.Equal(t, int64(0), sub.TimeModified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionService_FindSubmission_NotFound(t *testing.T) {
	svc, mock := setupSubmissionService(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM collaborate_submissions`).
		WithArgs(int64(5), userID, "b").
		WillReturnError(pgx.ErrNoRows)

	sub, err := svc.FindSubmission(context.Background(), 5, userID, models.PageB)

	assert.NoError(t, err)
	assert.Nil(t, sub)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionService_FindSubmission_InvalidPage(t *testing.T) {
	svc, mock := setupSubmissionService(t)

	_, err := svc.FindSubmission(context.Background(), 5, uuid.New(), models.Page("c"))

	assert.ErrorIs(t, err, ErrInvalidPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionService_SaveSubmission_FirstSave(t *testing.T) {
	svc, mock := setupSubmissionService(t)
	userID := uuid.New()
	modCtx := editor.ModuleContext(42)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO collaborate_submissions`).
		WithArgs(int64(5), userID, "a", " ", int16(models.FormatHTML), fixedNow.Unix()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectExec(`DELETE FROM files`).
		WithArgs(int64(42), "mod_collaborate", "submission", int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO files`).
		WithArgs(int64(42), "mod_collaborate", "submission", int64(10),
			"user", "draft", int64(555), userID, true, testMaxBytes, (*int64)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE collaborate_submissions`).
		WithArgs(`<p><img src="@@PLUGINFILE@@/a.png"></p>`, int16(models.FormatHTML), int64(10)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	content := editor.Content{
		Text:   `<p><img src="` + testBaseURL + `/draftfile/555/a.png"></p>`,
		Format: models.FormatHTML,
		ItemID: 555,
	}
	id, err := svc.SaveSubmission(context.Background(), userID, modCtx, 5, models.PageA, content)

	require.NoError(t, err)
	assert.Equal(t, int64(10), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionService_SaveSubmission_ResaveKeepsID(t *testing.T) {
	svc, mock := setupSubmissionService(t)
	userID := uuid.New()
	modCtx := editor.ModuleContext(42)

	for i, text := range []string{"first", "second"} {
		svc.now = func() time.Time { return fixedNow.Add(time.Duration(i) * time.Minute) }

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO collaborate_submissions .+ ON CONFLICT \(collaborate_id, user_id, page\)`).
			WithArgs(int64(5), userID, "a", " ", int16(models.FormatHTML), fixedNow.Add(time.Duration(i)*time.Minute).Unix()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
		mock.ExpectExec(`UPDATE collaborate_submissions`).
			WithArgs(text, int16(models.FormatPlain), int64(10)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		id, err := svc.SaveSubmission(context.Background(), userID, modCtx, 5, models.PageA, editor.Content{Text: text, Format: models.FormatPlain})

		require.NoError(t, err)
		assert.Equal(t, int64(10), id)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionService_SaveSubmission_MissingInstance(t *testing.T) {
	svc, mock := setupSubmissionService(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO collaborate_submissions`).
		WithArgs(int64(99), userID, "b", " ", int16(models.FormatHTML), fixedNow.Unix()).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := svc.SaveSubmission(context.Background(), userID, editor.ModuleContext(1), 99, models.PageB, editor.Content{Text: "x", Format: models.FormatHTML})

	assert.ErrorIs(t, err, ErrCollaborateNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionService_SaveSubmission_InvalidFormatRollsBack(t *testing.T) {
	svc, mock := setupSubmissionService(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO collaborate_submissions`).
		WithArgs(int64(5), userID, "a", " ", int16(models.FormatHTML), fixedNow.Unix()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectRollback()

	_, err := svc.SaveSubmission(context.Background(), userID, editor.ModuleContext(1), 5, models.PageA, editor.Content{Text: "x", Format: models.Format(9)})

	assert.ErrorIs(t, err, editor.ErrInvalidFormat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionService_SaveSubmission_InvalidPage(t *testing.T) {
	svc, mock := setupSubmissionService(t)

	_, err := svc.SaveSubmission(context.Background(), uuid.New(), editor.ModuleContext(1), 5, models.Page("A"), editor.Content{})

	assert.ErrorIs(t, err, ErrInvalidPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionService_Render(t *testing.T) {
	svc, _ := setupSubmissionService(t)
	sub := &models.Submission{ID: 10, Submission: `<img src="@@PLUGINFILE@@/a.png">`}

	out := svc.Render(editor.ModuleContext(42), sub)

	assert.Equal(t, `<img src="`+testBaseURL+`/pluginfile/42/mod_collaborate/submission/10/a.png">`, out.Submission)
	assert.Equal(t, `<img src="@@PLUGINFILE@@/a.png">`, sub.Submission)
}

func TestSubmissionService_Prepare(t *testing.T) {
	svc, mock := setupSubmissionService(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT nextval`).
		WillReturnRows(pgxmock.NewRows([]string{"nextval"}).AddRow(int64(777)))
	mock.ExpectExec(`INSERT INTO files`).
		WithArgs("user", "draft", int64(777), userID, int64(42), "mod_collaborate", "submission", int64(10)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	sub := &models.Submission{
		ID:               10,
		CollaborateID:    5,
		UserID:           userID,
		Page:             models.PageA,
		Submission:       `<img src="@@PLUGINFILE@@/old.png">`,
		SubmissionFormat: models.FormatHTML,
	}
	content, err := svc.Prepare(context.Background(), userID, editor.ModuleContext(42), sub)

	require.NoError(t, err)
	assert.Equal(t, editor.Content{
		Text:   `<img src="` + testBaseURL + `/draftfile/777/old.png">`,
		Format: models.FormatHTML,
		ItemID: 777,
	}, content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionService_Prepare_NotSavedYet(t *testing.T) {
	svc, mock := setupSubmissionService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT nextval`).
		WillReturnRows(pgxmock.NewRows([]string{"nextval"}).AddRow(int64(778)))
	mock.ExpectCommit()

	content, err := svc.Prepare(context.Background(), uuid.New(), editor.ModuleContext(42), nil)

	require.NoError(t, err)
	assert.Equal(t, editor.Content{Format: models.FormatHTML, ItemID: 778}, content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionService_ResaveFromPreparedDraftKeepsAttachments(t *testing.T) {
	svc, mock := setupSubmissionService(t)
	userID := uuid.New()
	modCtx := editor.ModuleContext(42)

	sub := &models.Submission{
		ID:               10,
		Submission:       `<img src="@@PLUGINFILE@@/old.png">`,
		SubmissionFormat: models.FormatHTML,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT nextval`).
		WillReturnRows(pgxmock.NewRows([]string{"nextval"}).AddRow(int64(777)))
	mock.ExpectExec(`INSERT INTO files`).
		WithArgs("user", "draft", int64(777), userID, int64(42), "mod_collaborate", "submission", int64(10)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	prepared, err := svc.Prepare(context.Background(), userID, modCtx, sub)
	require.NoError(t, err)

	// The client adds a second image to the prepared draft and saves.
	prepared.Text += `<img src="` + testBaseURL + `/draftfile/777/new.png">`

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO collaborate_submissions`).
		WithArgs(int64(5), userID, "a", " ", int16(models.FormatHTML), fixedNow.Unix()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectExec(`DELETE FROM files`).
		WithArgs(int64(42), "mod_collaborate", "submission", int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`INSERT INTO files`).
		WithArgs(int64(42), "mod_collaborate", "submission", int64(10),
			"user", "draft", int64(777), userID, true, testMaxBytes, (*int64)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(`UPDATE collaborate_submissions`).
		WithArgs(`<img src="@@PLUGINFILE@@/old.png"><img src="@@PLUGINFILE@@/new.png">`, int16(models.FormatHTML), int64(10)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	id, err := svc.SaveSubmission(context.Background(), userID, modCtx, 5, models.PageA, prepared)

	require.NoError(t, err)
	assert.Equal(t, int64(10), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
