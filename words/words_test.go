package words

import "testing"

func TestPick_ReturnsDistinctWords(t *testing.T) {
	selector := NewSelector(nil)

	picked, err := selector.Pick(3)
	if err != nil {
		t.Fatalf("Pick failed: %v", err)
	}
	if len(picked) != 3 {
		t.Fatalf("Expected 3 words, got %d", len(picked))
	}

	seen := make(map[string]struct{})
	known := make(map[string]struct{}, len(DefaultVocabulary))
	for _, w := range DefaultVocabulary {
		known[w] = struct{}{}
	}
	for _, w := range picked {
		if _, dup := seen[w]; dup {
			t.Errorf("Duplicate word %q in selection", w)
		}
		seen[w] = struct{}{}
		if _, ok := known[w]; !ok {
			t.Errorf("Word %q not in the vocabulary", w)
		}
	}
}

func TestPick_FailsWhenVocabularyTooSmall(t *testing.T) {
	selector := NewSelector([]string{"cat", "cat", "moon"})

	if _, err := selector.Pick(3); err == nil {
		t.Error("Expected an error when distinct words < count")
	}
	if picked, err := selector.Pick(2); err != nil || len(picked) != 2 {
		t.Errorf("Expected 2 words from 2 distinct, got %v (%v)", picked, err)
	}
}

func TestNewSelector_EmptyFallsBackToDefault(t *testing.T) {
	selector := NewSelector([]string{})

	picked, err := selector.Pick(5)
	if err != nil {
		t.Fatalf("Pick failed: %v", err)
	}
	if len(picked) != 5 {
		t.Errorf("Expected 5 words, got %d", len(picked))
	}
}
