package util

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Punctuation", "Hello, World!", "hello-world"},
		{"Spaces and dashes", "  multiple   spaces--and--dashes  ", "multiple-spaces-and-dashes"},
		{"Underscores", "snake_case_title", "snake-case-title"},
		{"Empty", "", ""},
		{"Only symbols", "!!!", ""},
		{"Leading and trailing dashes", "--edge--", "edge"},
		{"Digits survive", "Top 10 Tips", "top-10-tips"},
		{"Non-ASCII letters are stripped", "Café Olé", "caf-ol"},
		{"Tabs and newlines", "line\tone\ntwo", "line-one-two"},
		{"No-break space", "Hello\u00a0World", "hello-world"},
		{"Vertical tab", "Hello\vWorld", "hello-world"},
		{"Em space", "Hello\u2003World", "hello-world"},
		{"Ideographic space and BOM", "\ufeffHello\u3000World\ufeff", "hello-world"},
		{"Line separator", "Hello\u2028World", "hello-world"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.input); got != tc.expected {
				t.Errorf("Slugify(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World!",
		"  multiple   spaces--and--dashes  ",
		"__weird__ -- input !! here",
		"Ünïcödé títle",
		"Hello\u00a0World",
		"Hello\vWorld",
		"\u2003padded\u202ftitle\u2003",
		"a",
		"",
	}

	for _, input := range inputs {
		once := Slugify(input)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("same"))
	b := ContentHash([]byte("same"))
	if a != b {
		t.Errorf("Expected equal hashes, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(a))
	}
	if ContentHash([]byte("other")) == a {
		t.Error("Different content should produce different hashes")
	}
}

func TestParseFrontMatter(t *testing.T) {
	type meta struct {
		Date       string   `yaml:"date"`
		Categories []string `yaml:"categories"`
	}

	testCases := []struct {
		name         string
		markdown     string
		expectError  bool
		expectedDate string
		expectedBody string
		expectedCats int
	}{
		{
			name:         "Valid front matter",
			markdown:     "---\ndate: 2025-01-01T00:00:00.000Z\ncategories: [news, go]\n---\n\nHello",
			expectedDate: "2025-01-01T00:00:00.000Z",
			expectedBody: "Hello",
			expectedCats: 2,
		},
		{
			name:         "Empty categories",
			markdown:     "---\ndate: 2025-01-01T00:00:00.000Z\ncategories: []\n---\n\nBody",
			expectedDate: "2025-01-01T00:00:00.000Z",
			expectedBody: "Body",
		},
		{
			name:        "No front matter",
			markdown:    "# Just content",
			expectError: true,
		},
		{
			name:        "Empty file",
			markdown:    "",
			expectError: true,
		},
		{
			name:        "Unterminated front matter",
			markdown:    "---\ndate: x\n",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var m meta
			body, err := ParseFrontMatter([]byte(tc.markdown), &m)

			if tc.expectError {
				if err == nil {
					t.Errorf("Expected error, but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, but got: %v", err)
			}
			if m.Date != tc.expectedDate {
				t.Errorf("Expected date %q, got %q", tc.expectedDate, m.Date)
			}
			if len(m.Categories) != tc.expectedCats {
				t.Errorf("Expected %d categories, got %v", tc.expectedCats, m.Categories)
			}
			if string(body) != tc.expectedBody {
				t.Errorf("Expected body %q, got %q", tc.expectedBody, body)
			}
		})
	}
}
