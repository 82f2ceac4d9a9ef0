// Package sink writes draw models to concrete output formats. Every
// sink is a thin painter: it walks the model's routes and shapes in
// order and never recomputes geometry or colors.
package sink

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mpgalab/placeview/pkg/render"
)

// WriteJSON serializes the draw model as indented JSON. The output is
// the model verbatim, so any consumer can repaint it without access to
// the source placement.
func WriteJSON(w io.Writer, m *render.Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode draw model: %w", err)
	}
	return nil
}
