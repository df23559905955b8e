package dto

import (
	"github.com/dimitrije/collaborate-api/internal/models"
	"github.com/google/uuid"
)

type SaveSubmissionRequest struct {
	Submission EditorContent `json:"submission_editor"`
}

type SubmissionResponse struct {
	ID               int64         `json:"id"`
	CollaborateID    int64         `json:"collaborate_id"`
	UserID           uuid.UUID     `json:"user_id"`
	Page             models.Page   `json:"page"`
	Submission       string        `json:"submission"`
	SubmissionFormat models.Format `json:"submission_format"`
	TimeCreated      int64         `json:"timecreated"`
	TimeModified     int64         `json:"timemodified"`
}

// SubmissionEditResponse carries a submission prepared for the editor. ID is
// zero when the user has not saved the page yet.
type SubmissionEditResponse struct {
	ID         int64         `json:"id"`
	Page       models.Page   `json:"page"`
	Title      string        `json:"title"`
	Label      string        `json:"label"`
	Submission EditorContent `json:"submission_editor"`
}
