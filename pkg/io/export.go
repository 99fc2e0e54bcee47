package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/ringstack/pkg/resonator"
)

// Document is the on-disk form of a stack.
type Document struct {
	Seed       *uint64         `json:"seed,omitempty"`
	Truncated  bool            `json:"truncated,omitempty"`
	Resonators resonator.Stack `json:"resonators"`
}

// NewDocument wraps a stack with optional provenance.
func NewDocument(stack resonator.Stack, seed *uint64, truncated bool) Document {
	return Document{Seed: seed, Truncated: truncated, Resonators: stack}
}

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
func ExportJSON(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
