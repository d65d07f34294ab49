package writing

import (
	"strings"
	"unicode"
)

// Stats holds the surface text statistics the heuristic components consume.
type Stats struct {
	Words         int
	DistinctWords int
	Sentences     int
	Syllables     int
}

// Analyze tokenizes text and computes word, sentence and syllable counts.
// Tokens are compared case-insensitively for the distinct-word count.
func Analyze(text string) Stats {
	tokens := tokenize(text)

	distinct := make(map[string]bool, len(tokens))
	syllables := 0
	for _, tok := range tokens {
		distinct[tok] = true
		syllables += countSyllables(tok)
	}

	return Stats{
		Words:         len(tokens),
		DistinctWords: len(distinct),
		Sentences:     countSentences(text),
		Syllables:     syllables,
	}
}

// WordCount returns the number of word tokens in text. Length bounds on
// writing tasks and the evaluator's statistics use this same measure, so a
// submission is gated and reported with one count.
func WordCount(text string) int {
	return len(tokenize(text))
}

// tokenize splits text into lowercased word tokens. Apostrophes and hyphens
// stay inside a token ("don't", "well-known" count as one word each).
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(strings.ToLower(f), "'-")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// countSentences counts terminator-delimited sentences (., !, ?). A trailing
// clause without a terminator still counts as a sentence.
func countSentences(text string) int {
	count := 0
	pending := false // words seen since the last terminator
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if pending {
				count++
				pending = false
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			pending = true
		}
	}
	if pending {
		count++
	}
	return count
}

// countSyllables estimates syllables by counting vowel groups, with the
// usual silent-e adjustment. Every word counts at least one.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		return 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
