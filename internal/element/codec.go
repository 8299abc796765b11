package element

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a JSON element list.
func Decode(r io.Reader) ([]Element, error) {
	var elements []Element
	if err := json.NewDecoder(r).Decode(&elements); err != nil {
		return nil, fmt.Errorf("decode element list: %w", err)
	}
	return elements, nil
}

// Encode writes a JSON element list, indented, with a trailing newline.
func Encode(w io.Writer, elements []Element) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(elements)
}

// Load reads an element list from a file.
func Load(path string) ([]Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	elements, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return elements, nil
}

// Save writes an element list to a file.
func Save(path string, elements []Element) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, elements); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
