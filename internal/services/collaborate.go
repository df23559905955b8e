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

var ErrCollaborateNotFound = errors.New("collaborate not found")

type CollaborateService struct {
	db       *database.DB
	editor   *editor.Materializer
	maxBytes int64
	log      *logger.Logger
	now      func() time.Time
}

func NewCollaborateService(db *database.DB, materializer *editor.Materializer, maxBytes int64, log *logger.Logger) *CollaborateService {
	return &CollaborateService{
		db:       db,
		editor:   materializer,
		maxBytes: maxBytes,
		log:      log,
		now:      time.Now,
	}
}

func (s *CollaborateService) GetByID(ctx context.Context, id int64) (*models.Collaborate, error) {
	var c models.Collaborate
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, course, course_module, name, instructionsa, instructionsaformat,
			instructionsb, instructionsbformat, timecreated, timemodified
		FROM collaborate WHERE id = $1
	`, id).Scan(
		&c.ID, &c.Course, &c.CourseModule, &c.Name, &c.InstructionsA, &c.InstructionsAFormat,
		&c.InstructionsB, &c.InstructionsBFormat, &c.TimeCreated, &c.TimeModified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCollaborateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// PersistInstance saves inst and the editor fields submitted in values.
//
// When insert is true the row is first inserted as is to obtain the id that
// owns the field file areas; the fields are then materialized and the row
// updated. The whole sequence runs in one transaction. It returns the id of the
// instance; updating a missing instance fails with ErrCollaborateNotFound.
func (s *CollaborateService) PersistInstance(ctx context.Context, userID uuid.UUID, inst *models.Collaborate, values editor.Values, insert bool) (int64, error) {
	modCtx := editor.ModuleContext(inst.CourseModule)
	opts := editor.FieldOptions(modCtx, s.maxBytes)
	now := s.now().Unix()

	err := s.db.InTx(ctx, func(q database.Querier) error {
		if insert {
			inst.TimeCreated = now
			err := q.QueryRow(ctx, `
				INSERT INTO collaborate (course, course_module, name, instructionsa, instructionsaformat,
					instructionsb, instructionsbformat, timecreated, timemodified)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id
			`, inst.Course, inst.CourseModule, inst.Name,
				inst.InstructionsA, int16(inst.InstructionsAFormat),
				inst.InstructionsB, int16(inst.InstructionsBFormat),
				inst.TimeCreated, now,
			).Scan(&inst.ID)
			if err != nil {
				return fmt.Errorf("failed to insert collaborate: %w", err)
			}
		}

		for _, name := range editor.FieldNames() {
			content, ok := values.Field(name)
			if !ok {
				continue
			}
			stored, err := s.editor.PostUpdate(ctx, q, userID, content, opts, editor.FieldArea(modCtx, name, inst.ID))
			if err != nil {
				return fmt.Errorf("failed to save %s: %w", name, err)
			}
			if err := inst.SetEditorField(name, stored.Text, stored.Format); err != nil {
				return err
			}
		}

		inst.TimeModified = now
		tag, err := q.Exec(ctx, `
			UPDATE collaborate
			SET course = $1, course_module = $2, name = $3,
				instructionsa = $4, instructionsaformat = $5,
				instructionsb = $6, instructionsbformat = $7,
				timemodified = $8
			WHERE id = $9
		`, inst.Course, inst.CourseModule, inst.Name,
			inst.InstructionsA, int16(inst.InstructionsAFormat),
			inst.InstructionsB, int16(inst.InstructionsBFormat),
			inst.TimeModified, inst.ID)
		if err != nil {
			return fmt.Errorf("failed to update collaborate: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrCollaborateNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("collaborate saved", "collaborate_id", inst.ID, "inserted", insert)
	return inst.ID, nil
}

// Prepare fills an editor value per field with the stored content of inst,
// each in a fresh draft area holding copies of the field's files.
func (s *CollaborateService) Prepare(ctx context.Context, userID uuid.UUID, inst *models.Collaborate) (editor.Values, error) {
	modCtx := editor.ModuleContext(inst.CourseModule)
	opts := editor.FieldOptions(modCtx, s.maxBytes)
	values := editor.Values{}

	err := s.db.InTx(ctx, func(q database.Querier) error {
		for _, name := range editor.FieldNames() {
			text, format, err := inst.EditorField(name)
			if err != nil {
				return err
			}
			content, err := s.editor.Prepare(ctx, q, userID, editor.Stored{Text: text, Format: format}, opts, editor.FieldArea(modCtx, name, inst.ID))
			if err != nil {
				return fmt.Errorf("failed to prepare %s: %w", name, err)
			}
			values[editor.EditorName(name)] = content
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// Render returns a copy of inst with file links pointing at the public file route.
func (s *CollaborateService) Render(inst *models.Collaborate) *models.Collaborate {
	out := *inst
	modCtx := editor.ModuleContext(inst.CourseModule)
	out.InstructionsA = s.editor.RewritePluginfileURLs(inst.InstructionsA, editor.FieldArea(modCtx, "instructionsa", inst.ID))
	out.InstructionsB = s.editor.RewritePluginfileURLs(inst.InstructionsB, editor.FieldArea(modCtx, "instructionsb", inst.ID))
	return &out
}
