package textnorm

import (
	"regexp"
	"strings"
)

var (
	reCR      = regexp.MustCompile(`\r\n?`)
	reMultiWS = regexp.MustCompile(` {2,}`)
	reMultiNL = regexp.MustCompile(`\n{3,}`)

	hardSpace = strings.NewReplacer(" ", " ", " ", " ", " ", " ", "\t", " ")
)

// Clean canonicalizes OCR whitespace quirks: non-breaking and thin spaces
// become ordinary spaces, carriage returns are stripped, runs of blanks and
// blank lines collapse. Line breaks are kept.
func Clean(s string) string {
	s = reCR.ReplaceAllString(s, "\n")
	s = hardSpace.Replace(s)
	s = reMultiWS.ReplaceAllString(s, " ")
	s = reMultiNL.ReplaceAllString(s, "\n\n")
	return s
}

// Lines cleans the text and returns its trimmed non-empty lines in order.
// Empty input yields an empty slice.
func Lines(s string) []string {
	var out []string
	for _, ln := range strings.Split(Clean(s), "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		out = append(out, ln)
	}
	return out
}

// Normalize returns both the line list and the rejoined normalized text.
func Normalize(s string) (lines []string, joined string) {
	lines = Lines(s)
	return lines, strings.Join(lines, "\n")
}
