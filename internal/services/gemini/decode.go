package gemini

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyPattern       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// Decode recovers structured JSON from raw model text into target.
//
// Generative responses frequently wrap structured data in prose or markdown
// fences, or emit near-valid syntax. Recovery runs in a strict order, each
// stage attempted only when the prior one fails:
//
//  1. strict parse of the trimmed text
//  2. parse of the largest bracketed object or array region
//  3. parse after purely syntactic repairs (trailing commas removed, bare
//     keys quoted)
//
// When every stage fails, Decode returns a MalformedPayloadError carrying the
// best-matched fragment for diagnostics. Failed parse stages may leave stray
// values in target, so callers must discard it whenever an error is returned.
func Decode(raw string, target any) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &MalformedPayloadError{Err: errors.New("empty payload")}
	}

	strictErr := json.Unmarshal([]byte(trimmed), target)
	if strictErr == nil {
		return nil
	}

	fragment := largestBracketedRegion(trimmed)
	if fragment == "" {
		return &MalformedPayloadError{Fragment: trimmed, Err: strictErr}
	}

	fragmentErr := json.Unmarshal([]byte(fragment), target)
	if fragmentErr == nil {
		return nil
	}

	repaired := repairSyntax(fragment)
	if repaired != fragment {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return nil
		}
	}

	return &MalformedPayloadError{Fragment: fragment, Err: fragmentErr}
}

// largestBracketedRegion returns the widest {...} or [...] span in the text,
// matching greedily from the first opener to the last matching closer. Returns
// the empty string when no complete region exists.
func largestBracketedRegion(text string) string {
	object := spanBetween(text, '{', '}')
	array := spanBetween(text, '[', ']')
	if len(object) >= len(array) {
		return object
	}
	return array
}

func spanBetween(text string, open, close byte) string {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return ""
	}
	end := strings.LastIndexByte(text, close)
	if end <= start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}

// repairSyntax applies the two tolerated model quirks: trailing commas before
// a closing brace/bracket, and unquoted identifier-style keys. Anything
// beyond that is treated as unrecoverable.
func repairSyntax(fragment string) string {
	repaired := trailingCommaPattern.ReplaceAllString(fragment, "$1")
	repaired = bareKeyPattern.ReplaceAllString(repaired, `$1"$2":`)
	return repaired
}
