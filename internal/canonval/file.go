package canonval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ValidateFile reads a JSON document from disk and validates it. File and
// parse failures become report entries with their own codes instead of
// errors, so callers always get a report; ExitCode distinguishes them.
func (v *Validator) ValidateFile(path string) Report {
	data, err := os.ReadFile(path)
	if err != nil {
		code := CodeFileError
		message := fmt.Sprintf("read %s: %v", path, err)
		if errors.Is(err, fs.ErrNotExist) {
			message = fmt.Sprintf("file not found: %s", path)
		}
		return buildReport([]Issue{{Code: code, Path: "$", Message: message, Doc: docRef}})
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return buildReport([]Issue{{
			Code:    CodeParseError,
			Path:    parseErrorLocation(data, err),
			Message: fmt.Sprintf("invalid JSON: %v", err),
			Doc:     docRef,
		}})
	}

	return v.Validate(doc)
}

// parseErrorLocation renders the failing line when the decoder exposes a
// byte offset.
func parseErrorLocation(data []byte, err error) string {
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) && syntax.Offset > 0 && int(syntax.Offset) <= len(data) {
		line := 1 + bytes.Count(data[:syntax.Offset], []byte("\n"))
		return fmt.Sprintf("line %d", line)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Offset > 0 && int(typeErr.Offset) <= len(data) {
		line := 1 + bytes.Count(data[:typeErr.Offset], []byte("\n"))
		return fmt.Sprintf("line %d", line)
	}
	return "$"
}
