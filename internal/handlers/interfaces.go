package handlers

import (
	"context"

	"github.com/dimitrije/collaborate-api/internal/editor"
	"github.com/dimitrije/collaborate-api/internal/models"
	"github.com/dimitrije/collaborate-api/internal/services"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CollaborateServiceInterface defines the methods used by handlers from CollaborateService
type CollaborateServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*models.Collaborate, error)
	PersistInstance(ctx context.Context, userID uuid.UUID, inst *models.Collaborate, values editor.Values, insert bool) (int64, error)
	Prepare(ctx context.Context, userID uuid.UUID, inst *models.Collaborate) (editor.Values, error)
	Render(inst *models.Collaborate) *models.Collaborate
}

// SubmissionServiceInterface defines the methods used by handlers from SubmissionService
type SubmissionServiceInterface interface {
	FindSubmission(ctx context.Context, collaborateID int64, userID uuid.UUID, page models.Page) (*models.Submission, error)
	SaveSubmission(ctx context.Context, userID uuid.UUID, modCtx editor.Context, collaborateID int64, page models.Page, content editor.Content) (int64, error)
	Prepare(ctx context.Context, userID uuid.UUID, modCtx editor.Context, sub *models.Submission) (editor.Content, error)
	Render(modCtx editor.Context, sub *models.Submission) *models.Submission
}

// FileServiceInterface defines the methods used by handlers from FileService
type FileServiceInterface interface {
	UploadDraft(ctx context.Context, userID uuid.UUID, up services.DraftUpload) (*models.StoredFile, error)
	GetFile(ctx context.Context, area editor.Area, filePath, fileName string) (*models.StoredFile, error)
	GetDraftFile(ctx context.Context, userID uuid.UUID, itemID int64, filePath, fileName string) (*models.StoredFile, error)
}

// LocalizerInterface resolves a message printer for an Accept-Language value
type LocalizerInterface interface {
	Match(acceptLanguage string) language.Tag
	Printer(acceptLanguage string) *message.Printer
}

var (
	_ CollaborateServiceInterface = (*services.CollaborateService)(nil)
	_ SubmissionServiceInterface  = (*services.SubmissionService)(nil)
	_ FileServiceInterface        = (*services.FileService)(nil)
)
