package main

import (
	"encoding/json"
	"fmt"
	"os"

	"aafcanon/internal/canon"
)

// loadDocument reads and decodes a canonical document file. Callers that
// need the reason-code taxonomy for failures should validate first; this
// helper is for commands that already expect a well-formed document.
func loadDocument(path string) (*canon.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var doc canon.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	return &doc, nil
}
