package editor

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/message"
)

var ErrEmptyFieldName = errors.New("editor field name is empty")

// LabelKey is the catalog key of the partner editor label.
const LabelKey = "texteditor"

// Labeler renders catalog messages. *message.Printer satisfies it.
type Labeler interface {
	Sprintf(key message.Reference, a ...interface{}) string
}

// FieldManager adds the activity's rich-text fields to configuration forms.
type FieldManager struct {
	maxBytes int64
	labels   Labeler
}

func NewFieldManager(maxBytes int64, labels Labeler) *FieldManager {
	return &FieldManager{maxBytes: maxBytes, labels: labels}
}

func (m *FieldManager) FieldOptions(ctx Context) Options {
	return FieldOptions(ctx, m.maxBytes)
}

// RegisterFields adds the editor element for baseName. The partner letter in
// the label is the upper-cased last character of baseName ("instructionsa" → "A").
func (m *FieldManager) RegisterFields(form *Form, ctx Context, baseName string) error {
	if baseName == "" {
		return ErrEmptyFieldName
	}
	last, _ := utf8.DecodeLastRuneInString(baseName)
	partner := strings.ToUpper(string(last))

	name := EditorName(baseName)
	opts := m.FieldOptions(ctx)
	form.AddElement(Element{
		Type:    ElementEditor,
		Name:    name,
		Label:   m.labels.Sprintf(LabelKey, partner),
		Options: &opts,
	})
	form.SetType(name, ParamRaw)
	return nil
}

// EditorName is the form element name carrying the raw content of field.
func EditorName(field string) string {
	return field + "_editor"
}
