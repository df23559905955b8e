package testutil

import (
	"context"

	"github.com/dimitrije/collaborate-api/internal/editor"
	"github.com/dimitrije/collaborate-api/internal/models"
	"github.com/dimitrije/collaborate-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCollaborateService mocks the CollaborateService
type MockCollaborateService struct {
	mock.Mock
}

func (m *MockCollaborateService) GetByID(ctx context.Context, id int64) (*models.Collaborate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collaborate), args.Error(1)
}

func (m *MockCollaborateService) PersistInstance(ctx context.Context, userID uuid.UUID, inst *models.Collaborate, values editor.Values, insert bool) (int64, error) {
	args := m.Called(ctx, userID, inst, values, insert)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollaborateService) Prepare(ctx context.Context, userID uuid.UUID, inst *models.Collaborate) (editor.Values, error) {
	args := m.Called(ctx, userID, inst)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(editor.Values), args.Error(1)
}

func (m *MockCollaborateService) Render(inst *models.Collaborate) *models.Collaborate {
	args := m.Called(inst)
	return args.Get(0).(*models.Collaborate)
}

// MockSubmissionService mocks the SubmissionService
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) FindSubmission(ctx context.Context, collaborateID int64, userID uuid.UUID, page models.Page) (*models.Submission, error) {
	args := m.Called(ctx, collaborateID, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionService) SaveSubmission(ctx context.Context, userID uuid.UUID, modCtx editor.Context, collaborateID int64, page models.Page, content editor.Content) (int64, error) {
	args := m.Called(ctx, userID, modCtx, collaborateID, page, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubmissionService) Prepare(ctx context.Context, userID uuid.UUID, modCtx editor.Context, sub *models.Submission) (editor.Content, error) {
	args := m.Called(ctx, userID, modCtx, sub)
	return args.Get(0).(editor.Content), args.Error(1)
}

func (m *MockSubmissionService) Render(modCtx editor.Context, sub *models.Submission) *models.Submission {
	args := m.Called(modCtx, sub)
	return args.Get(0).(*models.Submission)
}

// MockFileService mocks the FileService
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) UploadDraft(ctx context.Context, userID uuid.UUID, up services.DraftUpload) (*models.StoredFile, error) {
	args := m.Called(ctx, userID, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredFile), args.Error(1)
}

func (m *MockFileService) GetFile(ctx context.Context, area editor.Area, filePath, fileName string) (*models.StoredFile, error) {
	args := m.Called(ctx, area, filePath, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredFile), args.Error(1)
}

func (m *MockFileService) GetDraftFile(ctx context.Context, userID uuid.UUID, itemID int64, filePath, fileName string) (*models.StoredFile, error) {
	args := m.Called(ctx, userID, itemID, filePath, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredFile), args.Error(1)
}
