package form

// Field describes one input of a form.
type Field struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Type      string   `json:"type"`
	Required  bool     `json:"required"`
	MaxLength int      `json:"max_length,omitempty"`
	Choices   []Choice `json:"choices,omitempty"`
	Default   any      `json:"default,omitempty"`
}

// Definition is the document returned by the GET form endpoints.
type Definition struct {
	Fields []Field `json:"fields"`
}

func text(name, label string, required bool, maxLen int) Field {
	return Field{Name: name, Label: label, Type: "text", Required: required, MaxLength: maxLen}
}
