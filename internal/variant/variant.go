// Package variant extracts labeled taglines from generated text.
package variant

import (
	"regexp"
	"strings"
)

var (
	ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)
	labeledLine   = regexp.MustCompile(`^\[([^\]]*)\](.*)$`)
)

// Variant is one parsed tagline and its style label.
type Variant struct {
	Style   string `json:"style"`
	Content string `json:"content"`
}

// String renders the variant the way the model writes it.
func (v Variant) String() string {
	return "[" + v.Style + "] " + v.Content
}

// Parse returns the "[style] content" lines of text in order. An optional
// "N." ordinal in front of a line is ignored. Lines that do not match, or
// whose style or content is blank, are skipped. Parse never fails and is
// safe to call on any prefix of a stream.
func Parse(text string) []Variant {
	if text == "" {
		return nil
	}

	var out []Variant
	for _, line := range strings.Split(text, "\n") {
		if v, ok := parseLine(line); ok {
			out = append(out, v)
		}
	}
	return out
}

func parseLine(line string) (Variant, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Variant{}, false
	}
	line = strings.TrimSpace(ordinalPrefix.ReplaceAllString(line, ""))

	m := labeledLine.FindStringSubmatch(line)
	if m == nil {
		return Variant{}, false
	}
	style := strings.TrimSpace(m[1])
	content := strings.TrimSpace(m[2])
	if style == "" || content == "" {
		return Variant{}, false
	}
	return Variant{Style: style, Content: content}, true
}
