package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello, World!", "hello world"},
		{"STAND BY ON TORPEDOES.", "stand by on torpedoes"},
		{"Line 1\nLine 2", "line 1 line 2"},
		{"  extra   spaces  ", "extra spaces"},
		{"<i>it's fine</i>", "its fine"},
		{"...", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestWordSetDeduplicates(t *testing.T) {
	set := WordSet("the cat and the dog")
	if len(set) != 4 {
		t.Fatalf("expected 4 distinct words, got %d", len(set))
	}
	if _, ok := set["cat"]; !ok {
		t.Fatal("expected set to contain \"cat\"")
	}
}

func TestOverlapCount(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"hello world today", "hello world today", 3},
		{"hello world today", "today the world said hello", 3},
		{"hello world", "goodbye moon", 0},
		{"", "anything", 0},
		{"the cat sat down", "a cat sat down quickly", 3},
	}
	for _, tt := range tests {
		got := OverlapCount(WordSet(tt.a), WordSet(tt.b))
		if got != tt.want {
			t.Errorf("OverlapCount(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
