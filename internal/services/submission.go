package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/collaborate-api/internal/database"
	"github.com/dimitrije/collaborate-api/internal/editor"
	"github.com/dimitrije/collaborate-api/internal/logger"
	"github.com/dimitrije/collaborate-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrInvalidPage = errors.New("page must be \"a\" or \"b\"")

// placeholderBody is stored by the first save until the real body is materialized.
const placeholderBody = " "

type SubmissionService struct {
	db       *database.DB
	editor   *editor.Materializer
	maxBytes int64
	log      *logger.Logger
	now      func() time.Time
}

func NewSubmissionService(db *database.DB, materializer *editor.Materializer, maxBytes int64, log *logger.Logger) *SubmissionService {
	return &SubmissionService{
		db:       db,
		editor:   materializer,
		maxBytes: maxBytes,
		log:      log,
		now:      time.Now,
	}
}

// FindSubmission returns the submission of userID for a page of an instance,
// or nil without error when there is none.
func (s *SubmissionService) FindSubmission(ctx context.Context, collaborateID int64, userID uuid.UUID, page models.Page) (*models.Submission, error) {
	if !page.Valid() {
		return nil, ErrInvalidPage
	}

	var sub models.Submission
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, collaborate_id, user_id, page, submission, submission_format, timecreated, timemodified
		FROM collaborate_submissions
		WHERE collaborate_id = $1 AND user_id = $2 AND page = $3
	`, collaborateID, userID, string(page)).Scan(
		&sub.ID, &sub.CollaborateID, &sub.UserID, &sub.Page,
		&sub.Submission, &sub.SubmissionFormat, &sub.TimeCreated, &sub.TimeModified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// SaveSubmission stores content as the submission of userID for a page and
// returns the submission id.
//
// The write has two phases inside one transaction. reserve upserts the row on
// (collaborate_id, user_id, page): a first save inserts a placeholder body with
// timemodified 0, later saves only refresh timemodified. The body is then
// materialized into the file area owned by the row id and written back.
// timecreated is never changed after the first save.
func (s *SubmissionService) SaveSubmission(ctx context.Context, userID uuid.UUID, modCtx editor.Context, collaborateID int64, page models.Page, content editor.Content) (int64, error) {
	if !page.Valid() {
		return 0, ErrInvalidPage
	}
	opts := editor.FieldOptions(modCtx, s.maxBytes)

	var id int64
	err := s.db.InTx(ctx, func(q database.Querier) error {
		var err error
		id, err = s.reserve(ctx, q, collaborateID, userID, page)
		if err != nil {
			return err
		}

		stored, err := s.editor.PostUpdate(ctx, q, userID, content, opts, editor.FieldArea(modCtx, editor.SubmissionArea, id))
		if err != nil {
			return fmt.Errorf("failed to save submission text: %w", err)
		}

		if _, err := q.Exec(ctx, `
			UPDATE collaborate_submissions
			SET submission = $1, submission_format = $2
			WHERE id = $3
		`, stored.Text, int16(stored.Format), id); err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("submission saved", "submission_id", id, "collaborate_id", collaborateID, "page", string(page))
	return id, nil
}

// Prepare returns sub ready for editing: its files are copied into a fresh
// draft area of userID and its links point there. Saving the result keeps the
// existing attachments. A nil sub yields an empty value with its own draft area.
func (s *SubmissionService) Prepare(ctx context.Context, userID uuid.UUID, modCtx editor.Context, sub *models.Submission) (editor.Content, error) {
	stored := editor.Stored{Format: models.FormatHTML}
	var id int64
	if sub != nil {
		stored = editor.Stored{Text: sub.Submission, Format: sub.SubmissionFormat}
		id = sub.ID
	}

	var content editor.Content
	err := s.db.InTx(ctx, func(q database.Querier) error {
		var err error
		content, err = s.editor.Prepare(ctx, q, userID, stored, editor.FieldOptions(modCtx, s.maxBytes), editor.FieldArea(modCtx, editor.SubmissionArea, id))
		return err
	})
	if err != nil {
		return editor.Content{}, fmt.Errorf("failed to prepare submission: %w", err)
	}
	return content, nil
}

func (s *SubmissionService) reserve(ctx context.Context, q database.Querier, collaborateID int64, userID uuid.UUID, page models.Page) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO collaborate_submissions
			(collaborate_id, user_id, page, submission, submission_format, timecreated, timemodified)
		VALUES ($1, $2, $3, $4, $5, $6, 0)
		ON CONFLICT (collaborate_id, user_id, page)
		DO UPDATE SET timemodified = EXCLUDED.timecreated
		RETURNING id
	`, collaborateID, userID, string(page), placeholderBody, int16(models.FormatHTML), s.now().Unix()).Scan(&id)
	if database.IsCode(err, database.CodeForeignKeyViolation) {
		return 0, ErrCollaborateNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to reserve submission: %w", err)
	}
	return id, nil
}

// Render returns a copy of sub with file links pointing at the public file route.
func (s *SubmissionService) Render(modCtx editor.Context, sub *models.Submission) *models.Submission {
	out := *sub
	out.Submission = s.editor.RewritePluginfileURLs(sub.Submission, editor.FieldArea(modCtx, editor.SubmissionArea, sub.ID))
	return &out
}
