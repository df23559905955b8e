package editor

import "fmt"

// Level is the kind of object a context belongs to.
type Level int

const LevelModule Level = 70

// Context owns file areas. Module contexts are identified by their course module id.
type Context struct {
	Level      Level `json:"level"`
	InstanceID int64 `json:"instance_id"`
}

func ModuleContext(courseModuleID int64) Context {
	return Context{Level: LevelModule, InstanceID: courseModuleID}
}

func (c Context) ID() int64 {
	return c.InstanceID
}

const (
	// Component owns every file area written by this service.
	Component = "mod_collaborate"

	DraftComponent = "user"
	DraftArea      = "draft"

	// SubmissionArea is the file area of submission bodies.
	SubmissionArea = "submission"
)

// Area identifies a file area: context, component, area name and owning item.
type Area struct {
	ContextID int64
	Component string
	FileArea  string
	ItemID    int64
}

func (a Area) String() string {
	return fmt.Sprintf("%d/%s/%s/%d", a.ContextID, a.Component, a.FileArea, a.ItemID)
}

// FieldArea is the area of a rich-text field of this component owned by itemID.
func FieldArea(ctx Context, field string, itemID int64) Area {
	return Area{
		ContextID: ctx.ID(),
		Component: Component,
		FileArea:  field,
		ItemID:    itemID,
	}
}
