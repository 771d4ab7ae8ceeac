package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

// Decode parses an extracted JSON substring into an AnalysisResult.
// A top-level array passes through as-is; a single object is normalized into a
// one-element result. Elements are not schema-validated: a non-record element
// decodes to a zero-value suggestion and propagates to the caller, which
// substitutes placeholders for missing fields.
func Decode(js string) (models.AnalysisResult, error) {
	trimmed := strings.TrimSpace(js)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedResponse)
	}
	if !json.Valid([]byte(trimmed)) {
		return nil, fmt.Errorf("%w: invalid JSON syntax", ErrMalformedResponse)
	}

	switch trimmed[0] {
	case '[':
		var result models.AnalysisResult
		if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if result == nil {
			result = models.AnalysisResult{}
		}
		return result, nil
	case '{':
		var one models.CodeSuggestion
		if err := json.Unmarshal([]byte(trimmed), &one); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return models.AnalysisResult{one}, nil
	default:
		return nil, fmt.Errorf("%w: top-level JSON is neither array nor object", ErrUnexpectedShape)
	}
}
