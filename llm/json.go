package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSONObject is returned by ExtractJSON when no balanced JSON object
// can be located in the input text.
var ErrNoJSONObject = errors.New("llm: no JSON object found in response")

// ExtractJSON strips Markdown code-fence wrappers (```json... ``` or
// ```... ```) and locates the first balanced {...} object in text. It does
// not validate the object's fields; callers decode the returned bytes
// themselves and apply their own skip-and-keep-others policy on schema
// errors.
func ExtractJSON(text string) ([]byte, error) {
	text = stripCodeFence(text)

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// inside a string literal, braces don't count
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				if json.Valid([]byte(candidate)) {
					return []byte(candidate), nil
				}
				return nil, ErrNoJSONObject
			}
		}
	}
	return nil, ErrNoJSONObject
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		// Drop an optional language tag on the fence line (```json).
		text = text[idx+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// CompactJSON re-marshals arbitrary decoded JSON without whitespace, used
// when logging payloads at debug level.
func CompactJSON(v any) string {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}
