package textmatch

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"flaw", "lawn", 2},
		{"flaw", "flawn", 1},
		{"flaw", "flaw", 0},
		{"", "", 0},
		{"", "abc", 3},
		{"attention is all you need", "attentoin is all you need", 2},
		{"attention is all you need", "attention is not all you need", 4},
	}

	for _, tt := range tests {
		if got := Distance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestDistanceUnicode(t *testing.T) {
	// Multi-byte runes count as single edits
	if got := Distance("café", "cafe"); got != 1 {
		t.Errorf("Distance(café, cafe) = %d, want 1", got)
	}
	if got := Distance("日本語", "日本"); got != 1 {
		t.Errorf("Distance(日本語, 日本) = %d, want 1", got)
	}
}

func TestSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"", "a", "attention is all you need", "日本語"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %f, want 1.0", s, s, got)
		}
	}
}

func TestSimilaritySymmetryAndRange(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"attention is all you need", "channel attention is all you need for video frame interpolation"},
		{"a", "completely different string"},
		{"", "nonempty"},
	}

	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity not symmetric for %q/%q: %f != %f", p[0], p[1], ab, ba)
		}
		if ab <= 0 || ab > 1 {
			t.Errorf("Similarity(%q, %q) = %f, outside (0, 1]", p[0], p[1], ab)
		}
	}
}

func TestNormalizedDistance(t *testing.T) {
	// dist 3 over max len 7
	got := NormalizedDistance("kitten", "sitting")
	want := 3.0 / 7.0
	if got != want {
		t.Errorf("NormalizedDistance(kitten, sitting) = %f, want %f", got, want)
	}

	if got := NormalizedDistance("", ""); got != 0 {
		t.Errorf("NormalizedDistance empty = %f, want 0", got)
	}
}
