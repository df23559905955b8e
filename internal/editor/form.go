package editor

type ElementType string

const ElementEditor ElementType = "editor"

// ParamType declares how a submitted value is filtered.
type ParamType string

const ParamRaw ParamType = "raw"

type Element struct {
	Type      ElementType `json:"type"`
	Name      string      `json:"name"`
	Label     string      `json:"label"`
	Options   *Options    `json:"options,omitempty"`
	ParamType ParamType   `json:"param_type,omitempty"`
}

// Form is an ordered set of named elements. Adding an element with an
// existing name replaces it in place.
type Form struct {
	elements []Element
	index    map[string]int
}

func NewForm() *Form {
	return &Form{index: make(map[string]int)}
}

func (f *Form) AddElement(el Element) {
	if i, ok := f.index[el.Name]; ok {
		f.elements[i] = el
		return
	}
	f.index[el.Name] = len(f.elements)
	f.elements = append(f.elements, el)
}

// SetType reports false when no element has the given name.
func (f *Form) SetType(name string, t ParamType) bool {
	i, ok := f.index[name]
	if !ok {
		return false
	}
	f.elements[i].ParamType = t
	return true
}

func (f *Form) Element(name string) (Element, bool) {
	i, ok := f.index[name]
	if !ok {
		return Element{}, false
	}
	return f.elements[i], true
}

func (f *Form) Elements() []Element {
	out := make([]Element, len(f.elements))
	copy(out, f.elements)
	return out
}
