package canonval

import (
	"encoding/json"
	"fmt"
)

// ValidateDocument round-trips a typed document through its JSON encoding
// and validates the result, so typed and on-disk documents are held to the
// identical contract.
func (v *Validator) ValidateDocument(doc any) Report {
	data, err := json.Marshal(doc)
	if err != nil {
		return buildReport([]Issue{{
			Code:    CodeInternalError,
			Path:    "$",
			Message: fmt.Sprintf("encode document: %v", err),
			Doc:     docRef,
		}})
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return buildReport([]Issue{{
			Code:    CodeInternalError,
			Path:    "$",
			Message: fmt.Sprintf("decode document: %v", err),
			Doc:     docRef,
		}})
	}
	return v.Validate(decoded)
}
