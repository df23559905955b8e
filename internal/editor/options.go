package editor

// Unlimited lifts the MaxFiles limit.
const Unlimited = -1

// Options configures a rich-text field and the way its content is stored.
type Options struct {
	AllowSubdirectories bool    `json:"subdirs"`
	MaxBytes            int64   `json:"maxbytes"`
	MaxFiles            int     `json:"maxfiles"`
	ChangeFormatAllowed bool    `json:"changeformat"`
	Context             Context `json:"context"`
	SkipHTMLCleaning    bool    `json:"noclean"`
	TrustText           bool    `json:"trusttext"`
}

var fieldNames = [...]string{"instructionsa", "instructionsb"}

// FieldNames returns the rich-text fields of an instance, in form order.
func FieldNames() []string {
	names := make([]string, len(fieldNames))
	copy(names, fieldNames[:])
	return names
}

// FieldOptions returns the option set shared by every rich-text field of the
// activity. maxBytes is the site-wide upload limit.
func FieldOptions(ctx Context, maxBytes int64) Options {
	return Options{
		AllowSubdirectories: true,
		MaxBytes:            maxBytes,
		MaxFiles:            Unlimited,
		ChangeFormatAllowed: true,
		Context:             ctx,
		SkipHTMLCleaning:    true,
		TrustText:           false,
	}
}
