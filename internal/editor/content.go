package editor

import "github.com/dimitrije/collaborate-api/internal/models"

// PluginfileToken replaces the base URL of owned files inside stored text.
const PluginfileToken = "@@PLUGINFILE@@"

// Content is the raw value of an editor element as submitted by a form.
// ItemID is the draft area holding files uploaded while editing; 0 means none.
type Content struct {
	Text   string        `json:"text"`
	Format models.Format `json:"format"`
	ItemID int64         `json:"itemid"`
}

// Stored is editor content after materialization.
type Stored struct {
	Text   string
	Format models.Format
}

// Values maps editor element names ("<field>_editor") to submitted content.
type Values map[string]Content

func (v Values) Field(field string) (Content, bool) {
	c, ok := v[EditorName(field)]
	return c, ok
}
