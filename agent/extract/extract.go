package extract

import "strings"

// Object recovers the substring of text most likely to parse as a single
// JSON object. Model output routinely wraps the object in markdown fences,
// prepends prose, or truncates mid-value; the caller's json.Unmarshal is the
// final arbiter, so when nothing object-like is found the input comes back
// unchanged and the parse error propagates there.
func Object(text string) string {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")

	start := strings.IndexByte(clean, '{')
	if start == -1 {
		return text
	}

	// Brace counting with string tracking: braces inside string values or
	// behind escapes must not affect the depth.
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(clean); i++ {
		ch := clean[i]

		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return clean[start : i+1]
			}
		}
	}

	// Truncated or malformed: fall back to the last closing brace.
	if end := strings.LastIndexByte(clean, '}'); end > start {
		return clean[start : end+1]
	}
	return clean
}
