package dto

import "github.com/dimitrije/collaborate-api/internal/models"

// EditorContent is the raw value of a rich-text field. A nil Format means html.
type EditorContent struct {
	Text   string         `json:"text"`
	Format *models.Format `json:"format,omitempty"`
	ItemID int64          `json:"itemid,omitempty"`
}

type SaveCollaborateRequest struct {
	Course        int64          `json:"course"`
	CourseModule  int64          `json:"course_module"`
	Name          string         `json:"name"`
	InstructionsA *EditorContent `json:"instructionsa_editor,omitempty"`
	InstructionsB *EditorContent `json:"instructionsb_editor,omitempty"`
}

type CollaborateResponse struct {
	ID                  int64         `json:"id"`
	Course              int64         `json:"course"`
	CourseModule        int64         `json:"course_module"`
	Name                string        `json:"name"`
	InstructionsA       string        `json:"instructionsa"`
	InstructionsAFormat models.Format `json:"instructionsaformat"`
	InstructionsB       string        `json:"instructionsb"`
	InstructionsBFormat models.Format `json:"instructionsbformat"`
	TimeCreated         int64         `json:"timecreated"`
	TimeModified        int64         `json:"timemodified"`
}

type FormElement struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Label     string `json:"label"`
	ParamType string `json:"param_type,omitempty"`
	Options   any    `json:"options,omitempty"`
}

// FormResponse describes the configuration form of an instance together with
// the current editor values, each in its own fresh draft area.
type FormResponse struct {
	Locale   string                   `json:"locale"`
	Elements []FormElement            `json:"elements"`
	Values   map[string]EditorContent `json:"values"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}
