package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when no JSON value could be recovered from a
// model reply.
var ErrParseFailed = errors.New("failed to parse response")

// excerptLimit bounds how much of an unparseable reply is echoed in errors.
const excerptLimit = 120

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// Parse decodes a model reply into T. Replies are tried as bare JSON, then
// as the contents of a markdown code fence, then as the outermost {...}
// object embedded in prose.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	for _, candidate := range candidates(content) {
		if err := json.Unmarshal([]byte(candidate), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, excerpt(content))
}

func candidates(content string) []string {
	out := []string{content}

	if m := fencePattern.FindStringSubmatch(content); len(m) == 2 {
		out = append(out, strings.TrimSpace(m[1]))
	}

	open := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if open >= 0 && end > open {
		out = append(out, content[open:end+1])
	}

	return out
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= excerptLimit {
		return s
	}
	return string(r[:excerptLimit]) + "..."
}
