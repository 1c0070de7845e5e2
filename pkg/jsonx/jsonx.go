// Package jsonx recovers JSON payloads from language-model replies, which are
// frequently wrapped in markdown code fences or surrounded by commentary.
package jsonx

import (
	"errors"
	"strings"
)

const fence = "```"

// ErrNoCandidate is returned when a reply contains nothing that could be JSON.
var ErrNoCandidate = errors.New("no JSON candidate in model reply")

// ExtractCandidate returns the JSON candidate embedded in a model reply.
// If the reply contains a fenced code block, the content of the first block is
// returned (an optional language tag such as "json" after the opening fence is
// skipped). Otherwise the whole trimmed reply is the candidate. An unterminated
// fence or an empty candidate is an error; validity of the candidate itself is
// the caller's concern.
func ExtractCandidate(reply string) (string, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ErrNoCandidate
	}

	start := strings.Index(reply, fence)
	if start == -1 {
		return reply, nil
	}

	body := reply[start+len(fence):]
	body = stripLanguageTag(body)

	end := strings.Index(body, fence)
	if end == -1 {
		return "", ErrNoCandidate
	}

	candidate := strings.TrimSpace(body[:end])
	if candidate == "" {
		return "", ErrNoCandidate
	}
	return candidate, nil
}

// stripLanguageTag removes a language identifier ("json", "JSON5", ...) that
// directly follows the opening fence.
func stripLanguageTag(body string) string {
	i := 0
	for i < len(body) && isAlnum(body[i]) {
		i++
	}
	return body[i:]
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
