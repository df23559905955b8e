package models

// Format is the markup format of a rich-text field.
type Format int16

const (
	FormatMoodle   Format = 0
	FormatHTML     Format = 1
	FormatPlain    Format = 2
	FormatMarkdown Format = 4
)

func (f Format) Valid() bool {
	switch f {
	case FormatMoodle, FormatHTML, FormatPlain, FormatMarkdown:
		return true
	}
	return false
}

func (f Format) String() string {
	switch f {
	case FormatMoodle:
		return "moodle"
	case FormatHTML:
		return "html"
	case FormatPlain:
		return "plain"
	case FormatMarkdown:
		return "markdown"
	}
	return "unknown"
}
