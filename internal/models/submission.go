package models

import "github.com/google/uuid"

// Page identifies one of the two partner roles of an instance.
type Page string

const (
	PageA Page = "a"
	PageB Page = "b"
)

func (p Page) Valid() bool {
	return p == PageA || p == PageB
}

// Submission is a user's free-text answer for one page of an instance.
// TimeModified is 0 until the first re-save.
type Submission struct {
	ID               int64     `json:"id"`
	CollaborateID    int64     `json:"collaborate_id"`
	UserID           uuid.UUID `json:"user_id"`
	Page             Page      `json:"page"`
	Submission       string    `json:"submission"`
	SubmissionFormat Format    `json:"submission_format"`
	TimeCreated      int64     `json:"timecreated"`
	TimeModified     int64     `json:"timemodified"`
}
