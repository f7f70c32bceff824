package nlp

import (
	"lyrical-api/logcolors"
	"sort"

	log "github.com/sirupsen/logrus"
)

// DefaultMaxWords caps the word cloud size
const DefaultMaxWords = 100

// WordCount is one entry of the word cloud
type WordCount struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// Aggregate counts words across per-song token sets and returns the most common ones,
// count descending then text ascending, at most limit entries (DefaultMaxWords if limit <= 0).
func Aggregate(tokenSets [][]string, limit int) []WordCount {
	if limit <= 0 {
		limit = DefaultMaxWords
	}

	counts := make(map[string]int)
	for _, tokens := range tokenSets {
		for _, token := range tokens {
			counts[token]++
		}
	}

	result := make([]WordCount, 0, len(counts))
	for text, value := range counts {
		result = append(result, WordCount{Text: text, Value: value})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Value != result[j].Value {
			return result[i].Value > result[j].Value
		}
		return result[i].Text < result[j].Text
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// WordCloud tokenizes every song's lyrics and aggregates them. Empty lyrics contribute nothing.
func WordCloud(lyrics []string, limit int) []WordCount {
	tokenSets := make([][]string, 0, len(lyrics))
	for _, l := range lyrics {
		if l == "" {
			continue
		}
		tokens := Tokenize(l)
		log.Debugf("%s %d distinct words from %d bytes of lyrics", logcolors.LogTokenizer, len(tokens), len(l))
		tokenSets = append(tokenSets, tokens)
	}
	return Aggregate(tokenSets, limit)
}
