package agent

import "regexp"

// jsonPayload matches, in order of preference: a markdown code fence (optionally
// tagged "json") wrapping an array or object, then the first bare bracket- or
// brace-delimited span anywhere in the text. (?s) lets . span newlines so the
// match runs greedily from the first opening delimiter to the last closing one,
// which tolerates multi-line pretty-printed JSON.
var jsonPayload = regexp.MustCompile("(?si)```(?:json)?\\s*([\\[{].*[\\]}])\\s*```|([\\[{].*[\\]}])")

// ExtractJSON locates the JSON substring inside a raw agent reply that may wrap
// it in code fences or narrative text. Returns the matched substring verbatim
// and false when nothing JSON-shaped is found.
//
// This is a best-effort heuristic, not a tokenizer: unbalanced brackets inside
// string values of the payload can defeat it. Known limitation, accepted.
func ExtractJSON(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	m := jsonPayload.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}
