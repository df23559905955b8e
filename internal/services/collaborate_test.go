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
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCollaborateService(t *testing.T) (*CollaborateService, pgxmock.PgxPoolIface) {
	t.Helper()
	db, mock := setupMockDB(t)
	svc := NewCollaborateService(db, newTestMaterializer(db), testMaxBytes, logger.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc, mock
}

func newTestInstance() *models.Collaborate {
	return &models.Collaborate{
		Course:              3,
		CourseModule:        42,
		Name:                "Pair work",
		InstructionsAFormat: models.FormatHTML,
		InstructionsBFormat: models.FormatHTML,
	}
}

func TestCollaborateService_PersistInstance_Insert(t *testing.T) {
	svc, mock := setupCollaborateService(t)
	userID := uuid.New()
	now := fixedNow.Unix()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO collaborate \(`).
		WithArgs(int64(3), int64(42), "Pair work", "", int16(1), "", int16(1), now, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(`UPDATE collaborate SET`).
		WithArgs(int64(3), int64(42), "Pair work", "<p>A</p>", int16(1), "Read **this**", int16(4), now, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	inst := newTestInstance()
	values := editor.Values{
		"instructionsa_editor": {Text: "<p>A</p>", Format: models.FormatHTML},
		"instructionsb_editor": {Text: "Read **this**", Format: models.FormatMarkdown},
	}

	id, err := svc.PersistInstance(context.Background(), userID, inst, values, true)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), inst.ID)
	assert.Equal(t, "<p>A</p>", inst.InstructionsA)
	assert.Equal(t, models.FormatMarkdown, inst.InstructionsBFormat)
	assert.Equal(t, now, inst.TimeCreated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollaborateService_PersistInstance_InsertWithFiles(t *testing.T) {
	svc, mock := setupCollaborateService(t)
	userID := uuid.New()
	now := fixedNow.Unix()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO collaborate \(`).
		WithArgs(int64(3), int64(42), "Pair work", "", int16(1), "", int16(1), now, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(`DELETE FROM files`).
		WithArgs(int64(42), "mod_collaborate", "instructionsa", int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO files`).
		WithArgs(int64(42), "mod_collaborate", "instructionsa", int64(7),
			"user", "draft", int64(31), userID, true, testMaxBytes, (*int64)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE collaborate SET`).
		WithArgs(int64(3), int64(42), "Pair work", `<img src="@@PLUGINFILE@@/map.png">`, int16(1), "", int16(1), now, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	values := editor.Values{
		"instructionsa_editor": {Text: `<img src="` + testBaseURL + `/draftfile/31/map.png">`, Format: models.FormatHTML, ItemID: 31},
	}

	id, err := svc.PersistInstance(context.Background(), userID, newTestInstance(), values, true)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollaborateService_PersistInstance_Update(t *testing.T) {
	svc, mock := setupCollaborateService(t)
	now := fixedNow.Unix()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE collaborate SET`).
		WithArgs(int64(3), int64(42), "Pair work", "new a", int16(2), "new b", int16(2), now, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	inst := newTestInstance()
	inst.ID = 7
	values := editor.Values{
		"instructionsa_editor": {Text: "new a", Format: models.FormatPlain},
		"instructionsb_editor": {Text: "new b", Format: models.FormatPlain},
	}

	id, err := svc.PersistInstance(context.Background(), uuid.New(), inst, values, false)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollaborateService_PersistInstance_UpdateMissing(t *testing.T) {
	svc, mock := setupCollaborateService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE collaborate SET`).
		WithArgs(int64(3), int64(42), "Pair work", "", int16(1), "", int16(1), fixedNow.Unix(), int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	inst := newTestInstance()
	inst.ID = 404

	_, err := svc.PersistInstance(context.Background(), uuid.New(), inst, editor.Values{}, false)

	assert.ErrorIs(t, err, ErrCollaborateNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollaborateService_GetByID(t *testing.T) {
	svc, mock := setupCollaborateService(t)

	rows := pgxmock.NewRows([]string{
		"id", "course", "course_module", "name", "instructionsa", "instructionsaformat",
		"instructionsb", "instructionsbformat", "timecreated", "timemodified",
	}).AddRow(int64(7), int64(3), int64(42), "Pair work", "a", models.FormatHTML, "b", models.FormatPlain, int64(100), int64(200))

	mock.ExpectQuery(`SELECT .+ FROM collaborate WHERE id`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	inst, err := svc.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(42), inst.CourseModule)
	assert.Equal(t, models.FormatPlain, inst.InstructionsBFormat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollaborateService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupCollaborateService(t)

	mock.ExpectQuery(`SELECT .+ FROM collaborate WHERE id`).
		WithArgs(int64(8)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(context.Background(), 8)

	assert.ErrorIs(t, err, ErrCollaborateNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollaborateService_Prepare(t *testing.T) {
	svc, mock := setupCollaborateService(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT nextval`).
		WillReturnRows(pgxmock.NewRows([]string{"nextval"}).AddRow(int64(100)))
	mock.ExpectExec(`INSERT INTO files`).
		WithArgs("user", "draft", int64(100), userID, int64(42), "mod_collaborate", "instructionsa", int64(7)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT nextval`).
		WillReturnRows(pgxmock.NewRows([]string{"nextval"}).AddRow(int64(101)))
	mock.ExpectExec(`INSERT INTO files`).
		WithArgs("user", "draft", int64(101), userID, int64(42), "mod_collaborate", "instructionsb", int64(7)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectCommit()

	inst := newTestInstance()
	inst.ID = 7
	inst.InstructionsA = `<img src="@@PLUGINFILE@@/map.png">`
	inst.InstructionsB = "plain"

	values, err := svc.Prepare(context.Background(), userID, inst)

	require.NoError(t, err)
	assert.Equal(t, editor.Content{Text: `<img src="` + testBaseURL + `/draftfile/100/map.png">`, Format: models.FormatHTML, ItemID: 100}, values["instructionsa_editor"])
	assert.Equal(t, int64(101), values["instructionsb_editor"].ItemID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollaborateService_Render(t *testing.T) {
	svc, _ := setupCollaborateService(t)
	inst := newTestInstance()
	inst.ID = 7
	inst.InstructionsB = `<a href="@@PLUGINFILE@@/sub/notes.pdf">notes</a>`

	out := svc.Render(inst)

	assert.Equal(t, `<a href="`+testBaseURL+`/pluginfile/42/mod_collaborate/instructionsb/7/sub/notes.pdf">notes</a>`, out.InstructionsB)
	assert.Equal(t, `<a href="@@PLUGINFILE@@/sub/notes.pdf">notes</a>`, inst.InstructionsB)
}
