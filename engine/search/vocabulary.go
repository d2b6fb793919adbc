package search

import (
	"sort"
	"strings"

	"github.com/derekparker/trie"
)

// Vocabulary is the set of words of a text, used for suggesting search terms.
// Words are UAX#29 word segments containing a letter or digit, folded to
// lower case.
type Vocabulary struct {
	words *trie.Trie
	size  int
}

type entry struct {
	word  string
	count int
}

// Suggestion is a completion of a search prefix.
type Suggestion struct {
	Word  string
	Count int // number of occurrences in the text
}

// NewVocabulary collects the words of a plain text.
func NewVocabulary(text string) *Vocabulary {
	v := &Vocabulary{words: trie.New()}
	eachWordSegment(text, func(seg string) {
		if isWord(seg) {
			v.add(strings.ToLower(seg))
		}
	})
	tracer().Debugf("vocabulary has %d distinct words", v.size)
	return v
}

func (v *Vocabulary) add(word string) {
	if node, ok := v.words.Find(word); ok {
		node.Meta().(*entry).count++
		return
	}
	v.words.Add(word, &entry{word: word, count: 1})
	v.size++
}

// Size returns the number of distinct words.
func (v *Vocabulary) Size() int {
	return v.size
}

// Count returns how often a word occurs, ignoring case.
func (v *Vocabulary) Count(word string) int {
	if node, ok := v.words.Find(strings.ToLower(word)); ok {
		return node.Meta().(*entry).count
	}
	return 0
}

// Suggest returns at most max words starting with prefix, most frequent
// first. Words of equal frequency are sorted alphabetically. max <= 0 means
// no limit.
func (v *Vocabulary) Suggest(prefix string, max int) []Suggestion {
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return nil
	}
	keys := v.words.PrefixSearch(prefix)
	suggestions := make([]Suggestion, 0, len(keys))
	for _, k := range keys {
		if node, ok := v.words.Find(k); ok {
			e := node.Meta().(*entry)
			suggestions = append(suggestions, Suggestion{Word: e.word, Count: e.count})
		}
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Count != suggestions[j].Count {
			return suggestions[i].Count > suggestions[j].Count
		}
		return suggestions[i].Word < suggestions[j].Word
	})
	if max > 0 && len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return suggestions
}
