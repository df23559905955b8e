package models

import "fmt"

// Collaborate is one configured activity instance inside a course.
type Collaborate struct {
	ID                  int64  `json:"id"`
	Course              int64  `json:"course"`
	CourseModule        int64  `json:"course_module"`
	Name                string `json:"name"`
	InstructionsA       string `json:"instructionsa"`
	InstructionsAFormat Format `json:"instructionsaformat"`
	InstructionsB       string `json:"instructionsb"`
	InstructionsBFormat Format `json:"instructionsbformat"`
	TimeCreated         int64  `json:"timecreated"`
	TimeModified        int64  `json:"timemodified"`
}

// EditorField returns the text and format stored under an editor field name.
func (c *Collaborate) EditorField(name string) (string, Format, error) {
	switch name {
	case "instructionsa":
		return c.InstructionsA, c.InstructionsAFormat, nil
	case "instructionsb":
		return c.InstructionsB, c.InstructionsBFormat, nil
	}
	return "", 0, fmt.Errorf("unknown editor field %q", name)
}

// SetEditorField stores text and format under an editor field name.
func (c *Collaborate) SetEditorField(name, text string, format Format) error {
	switch name {
	case "instructionsa":
		c.InstructionsA, c.InstructionsAFormat = text, format
	case "instructionsb":
		c.InstructionsB, c.InstructionsBFormat = text, format
	default:
		return fmt.Errorf("unknown editor field %q", name)
	}
	return nil
}
