package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips leading article",
			input:    "The Dark Knight",
			expected: "dark knight",
		},
		{
			name:     "strips mixed stopwords",
			input:    "Lord of the Rings",
			expected: "lord rings",
		},
		{
			name:     "all stopwords fall back to lowercased input",
			input:    "The Then",
			expected: "the then",
		},
		{
			name:     "single stopword title",
			input:    "It",
			expected: "it",
		},
		{
			name:     "punctuation split",
			input:    "Spider-Man: Into the Spider-Verse",
			expected: "spider man spider verse",
		},
		{
			name:     "collapses whitespace",
			input:    "  Dark    Knight  ",
			expected: "dark knight",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "numbers preserved",
			input:    "2001: A Space Odyssey",
			expected: "2001 space odyssey",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"The Dark Knight",
		"The Then",
		"Lord of the Rings",
		"Spider-Man: Into the Spider-Verse",
		"it",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalize_NeverEmptyForNonEmptyInput(t *testing.T) {
	inputs := []string{"The", "a", "of the", "It", "and or not"}

	for _, input := range inputs {
		if got := Normalize(input); got == "" {
			t.Errorf("Normalize(%q) = empty string, want non-empty", input)
		}
	}
}

func TestArticleNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trailing the",
			input:    "Matrix, The",
			expected: "the matrix",
		},
		{
			name:     "trailing a",
			input:    "Beautiful Mind, A",
			expected: "a beautiful mind",
		},
		{
			name:     "trailing an",
			input:    "American Werewolf in London, An",
			expected: "an american werewolf in london",
		},
		{
			name:     "no trailing article",
			input:    "The Matrix",
			expected: "the matrix",
		},
		{
			name:     "comma without article",
			input:    "New York, New York",
			expected: "new york, new york",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArticleNormalize(tt.input); got != tt.expected {
				t.Errorf("ArticleNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestArticleNormalize_BothFormsAgree(t *testing.T) {
	if ArticleNormalize("Matrix, The") != ArticleNormalize("The Matrix") {
		t.Error("ArticleNormalize should map both article forms to the same string")
	}
}
