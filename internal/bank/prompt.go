package bank

import (
	"regexp"
	"strings"
)

// Imported banks sometimes carry exam-sheet metadata on the first prompt
// line, e.g. "Parte 3 – Notas tipo mini texto. Texto 8.".
var (
	partePrefix = regexp.MustCompile(`^Parte\s+\S+\s*[–-]\s*`)
	textoMarker = regexp.MustCompile(`(?i)\bTexto\s+\d+\.?\s*$`)
)

// cleanPrompt strips a leading "Parte N –" marker from the prompt's first
// line. When the rest of that line is itself sheet metadata (it ends with a
// "Texto N." reference), the whole line is dropped; otherwise the
// instruction text after the marker is kept.
func cleanPrompt(s string) string {
	first, rest, hasRest := strings.Cut(s, "\n")
	loc := partePrefix.FindStringIndex(first)
	if loc == nil {
		return s
	}
	remainder := first[loc[1]:]
	if textoMarker.MatchString(remainder) {
		remainder = ""
	}
	switch {
	case remainder != "" && hasRest:
		return remainder + "\n" + rest
	case remainder != "":
		return remainder
	case hasRest:
		return rest
	default:
		// The prompt was nothing but metadata; keep it rather than
		// returning an empty prompt.
		return s
	}
}
