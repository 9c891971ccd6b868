package main

import (
	"encoding/json"
	"fmt"
	"io"
)

type Renderer interface {
	Render(w io.Writer, statement Statement) error
}

// JSONRenderer writes a statement as JSON followed by a newline. An empty
// Indent produces compact output.
type JSONRenderer struct {
	Indent string
}

func (r JSONRenderer) Render(w io.Writer, statement Statement) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", r.Indent)
	if err := enc.Encode(statement); err != nil {
		return fmt.Errorf("render %s statement: %w", statement.Kind, err)
	}
	return nil
}
