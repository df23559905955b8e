package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dimitrije/collaborate-api/internal/database"
	"github.com/dimitrije/collaborate-api/internal/models"
	"github.com/google/uuid"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateCollaborate creates a test instance with default values
func (f *Fixtures) CreateCollaborate(t *testing.T, opts ...CollaborateOption) *models.Collaborate {
	t.Helper()
	f.counter++

	inst := &models.Collaborate{
		Course:              int64(f.counter),
		CourseModule:        int64(100 + f.counter),
		Name:                fmt.Sprintf("Test Collaborate %d", f.counter),
		InstructionsAFormat: models.FormatHTML,
		InstructionsBFormat: models.FormatHTML,
		TimeCreated:         time.Now().Unix(),
	}

	for _, opt := range opts {
		opt(inst)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO collaborate (course, course_module, name, instructionsa, instructionsaformat,
			instructionsb, instructionsbformat, timecreated, timemodified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, timemodified
	`, inst.Course, inst.CourseModule, inst.Name,
		inst.InstructionsA, int16(inst.InstructionsAFormat),
		inst.InstructionsB, int16(inst.InstructionsBFormat),
		inst.TimeCreated,
	).Scan(&inst.ID, &inst.TimeModified)
	if err != nil {
		t.Fatalf("failed to create collaborate: %v", err)
	}

	return inst
}

// CollaborateOption configures a test instance
type CollaborateOption func(*models.Collaborate)

// WithCollaborateName sets the instance name
func WithCollaborateName(name string) CollaborateOption {
	return func(c *models.Collaborate) {
		c.Name = name
	}
}

// WithCourseModule sets the course module, which is also the module context id
func WithCourseModule(cmid int64) CollaborateOption {
	return func(c *models.Collaborate) {
		c.CourseModule = cmid
	}
}

// WithInstructions sets the stored instruction texts
func WithInstructions(a, b string) CollaborateOption {
	return func(c *models.Collaborate) {
		c.InstructionsA = a
		c.InstructionsB = b
	}
}

// CreateDraftFile stores a file in a user's draft area
func (f *Fixtures) CreateDraftFile(t *testing.T, userID uuid.UUID, itemID int64, filePath, fileName string, content []byte) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO files (context_id, component, file_area, item_id, file_path, file_name, user_id, size, content)
		VALUES (0, 'user', 'draft', $1, $2, $3, $4, $5, $6)
	`, itemID, filePath, fileName, userID, int64(len(content)), content)
	if err != nil {
		t.Fatalf("failed to create draft file: %v", err)
	}
}
