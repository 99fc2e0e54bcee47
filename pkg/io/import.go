package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/ringstack/pkg/errors"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

// ReadJSON decodes a stack document from r and validates it.
//
// The input is either a document object or a bare array of resonators.
// Malformed JSON and unknown gap sides fail with INVALID_INPUT; resonators
// that break the geometry rules fail with DEGENERATE_GEOMETRY. ReadJSON does
// not close r.
func ReadJSON(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stack")
	}

	var doc Document
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &doc.Resonators)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode stack")
	}

	if doc.Resonators.IsEmpty() {
		return Document{}, errors.New(errors.ErrCodeInvalidInput, "stack has no resonators")
	}
	if err := doc.Resonators.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// ReadStack is [ReadJSON] without the provenance fields.
func ReadStack(r io.Reader) (resonator.Stack, error) {
	doc, err := ReadJSON(r)
	if err != nil {
		return resonator.Stack{}, err
	}
	return doc.Resonators, nil
}

// ImportJSON reads the stack document at path.
func ImportJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
		}
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
