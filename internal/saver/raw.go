package saver

import (
	"encoding/json"
	"os"
)

// WriteJSON writes v as indented JSON, overwriting any existing file. Map keys
// are marshalled in sorted order, so identical inputs produce identical bytes.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
