package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTerms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Terms
	}{
		{
			name:     "empty string is no constraint",
			input:    "",
			expected: nil,
		},
		{
			name:     "bare words without OR are implicit AND",
			input:    "amoxicillin 500mg",
			expected: &Terms{MustHave: []string{"amoxicillin", "500mg"}},
		},
		{
			name:     "bare words with OR are alternatives",
			input:    "a OR b",
			expected: &Terms{ShouldHave: []string{"a", "b"}},
		},
		{
			name:     "phrase and exclusion",
			input:    `"panadol extra" -expired`,
			expected: &Terms{MustNotHave: []string{"expired"}, Phrases: []string{"panadol extra"}},
		},
		{
			name:     "only a phrase",
			input:    `"viên nén bao phim"`,
			expected: &Terms{Phrases: []string{"viên nén bao phim"}},
		},
		{
			name:  "prefixes keep their meaning inside OR groups",
			input: "paracetamol OR ibuprofen +500mg -gel",
			expected: &Terms{
				MustHave:    []string{"500mg"},
				MustNotHave: []string{"gel"},
				ShouldHave:  []string{"paracetamol", "ibuprofen"},
			},
		},
		{
			name:     "lone prefixes are discarded",
			input:    "+ - insulin",
			expected: &Terms{MustHave: []string{"insulin"}},
		},
		{
			name:     "lowercase or is an ordinary word",
			input:    "a or b",
			expected: &Terms{MustHave: []string{"a", "or", "b"}},
		},
		{
			name:     "extra whitespace is ignored",
			input:    "  vitamin   C  ",
			expected: &Terms{MustHave: []string{"vitamin", "C"}},
		},
		{
			name:     "phrase is removed before splitting on OR",
			input:    `"a OR b" c`,
			expected: &Terms{MustHave: []string{"c"}, Phrases: []string{"a OR b"}},
		},
		{
			name:     "unterminated quote stays a word",
			input:    `"abc`,
			expected: &Terms{MustHave: []string{`"abc`}},
		},
		{
			name:     "blank phrase is discarded",
			input:    `" " aspirin`,
			expected: &Terms{MustHave: []string{"aspirin"}},
		},
		{
			name:     "whitespace only yields empty buckets",
			input:    "   ",
			expected: &Terms{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTerms(tt.input))
		})
	}
}

func TestTermsEmpty(t *testing.T) {
	var nilTerms *Terms
	assert.True(t, nilTerms.Empty())
	assert.True(t, (&Terms{}).Empty())
	assert.False(t, (&Terms{Phrases: []string{"x"}}).Empty())
}
