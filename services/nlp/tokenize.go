package nlp

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/tokenize"
)

// minTokenLength is exclusive: tokens must be longer than this to survive
const minTokenLength = 3

// structuralMarkers are section labels removed from lyrics before tokenizing.
// Matching is case-sensitive.
var structuralMarkers = []string{"Verse", "Chorus", "Outro", "Intro"}

// literalLineBreak is the two-character sequence "/n", not a newline.
// Lyrics sources have been seen to carry it literally; real newlines are plain whitespace here.
const literalLineBreak = "/n"

var wordTokenizer = tokenize.NewTreebankWordTokenizer()

func isPunctOrSymbol(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Tokenize turns one song's lyrics into its set of significant words: uppercased, with
// stopwords, punctuation and tokens of three characters or fewer removed. Each word
// appears once. The result is sorted; order carries no meaning.
func Tokenize(lyrics string) []string {
	text := strings.ReplaceAll(lyrics, literalLineBreak, " ")
	for _, marker := range structuralMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}

	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return []string{}
	}

	seen := make(map[string]struct{})
	for _, token := range wordTokenizer.Tokenize(text) {
		if IsStopword(token) {
			continue
		}
		word := strings.TrimFunc(token, isPunctOrSymbol)
		if utf8.RuneCountInString(word) <= minTokenLength || IsStopword(word) {
			continue
		}
		seen[strings.ToUpper(word)] = struct{}{}
	}

	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
