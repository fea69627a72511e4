// words/words.go
package words

import (
	"fmt"
	"math/rand"
)

// DefaultVocabulary is the built-in word list used when no custom
// vocabulary is configured.
var DefaultVocabulary = []string{
	"apple", "banana", "bridge", "butterfly", "cactus", "camera", "candle",
	"castle", "cat", "chair", "cloud", "compass", "crown", "dolphin",
	"dragon", "drum", "elephant", "feather", "fire", "fish", "flower",
	"fork", "ghost", "giraffe", "guitar", "hammer", "helicopter", "house",
	"igloo", "island", "jacket", "kangaroo", "key", "kite", "ladder",
	"lamp", "lighthouse", "lion", "mirror", "moon", "mountain", "mushroom",
	"octopus", "owl", "pencil", "penguin", "piano", "pirate", "pizza",
	"rainbow", "robot", "rocket", "sandwich", "scissors", "shark", "ship",
	"snowman", "spider", "star", "sun", "sword", "telescope", "tent",
	"tiger", "train", "tree", "turtle", "umbrella", "volcano", "whale",
}

// Selector picks random drawing words from a fixed vocabulary.
type Selector struct {
	vocabulary []string
}

// NewSelector creates a selector over the given vocabulary. A nil or empty
// vocabulary falls back to the built-in list.
func NewSelector(vocabulary []string) *Selector {
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary
	}
	return &Selector{vocabulary: vocabulary}
}

// Pick returns count distinct words drawn uniformly without replacement.
// It fails only when the vocabulary holds fewer distinct words than count,
// which is a configuration error rather than a runtime condition.
func (s *Selector) Pick(count int) ([]string, error) {
	distinct := make(map[string]struct{}, len(s.vocabulary))
	for _, w := range s.vocabulary {
		distinct[w] = struct{}{}
	}
	if len(distinct) < count {
		return nil, fmt.Errorf("vocabulary has %d distinct words, need %d", len(distinct), count)
	}

	selected := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	for len(selected) < count {
		w := s.vocabulary[rand.Intn(len(s.vocabulary))]
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		selected = append(selected, w)
	}
	return selected, nil
}
