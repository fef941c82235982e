package app

import (
	"encoding/json"
	"io"
)

// writeJSON writes v as two-space indented JSON followed by a newline.
// HTML characters in commit messages and descriptions are left as is.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
