package models

import (
	"encoding/json"
	"errors"
)

// CodeSuggestion is one ICD-10 code proposed by the agent for a note.
// No field is guaranteed non-empty: the upstream agent may omit or mistype any of
// them, and consumers must degrade gracefully (placeholder for missing fields).
type CodeSuggestion struct {
	// Extract is the verbatim excerpt of the note that justified the code.
	Extract string `json:"extract"`
	// Code is the ICD-10 code, letter + two digits + dot + digit (e.g. "R50.9").
	Code string `json:"code"`
	// Description is a short human-readable text in the requested language.
	Description string `json:"description"`
	// URL links to the classification entry on the selected ICD-10 website.
	URL string `json:"url"`
}

// UnmarshalJSON decodes tolerantly: an element that is not an object, or an object
// with mistyped fields, yields a zero/partial suggestion instead of an error.
// Duplicate codes are kept as-is; dedup is the agent's responsibility.
func (c *CodeSuggestion) UnmarshalJSON(data []byte) error {
	type plain CodeSuggestion
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			*c = CodeSuggestion(p)
			return nil
		}
		return err
	}
	*c = CodeSuggestion(p)
	return nil
}

// AnalysisResult is the ordered sequence of suggestions for one analysis.
// Immutable once returned; at most 15 entries by prompt contract, but the bound is
// never enforced locally.
type AnalysisResult []CodeSuggestion
