package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "english day month year",
			raw:      "16 Feb, 2012",
			expected: "16.02.2012",
		},
		{
			name:     "english month year defaults day",
			raw:      "Feb 2012",
			expected: "01.02.2012",
		},
		{
			name:     "russian day month year",
			raw:      "18 сен 2018",
			expected: "18.09.2018",
		},
		{
			name:     "russian with year suffix",
			raw:      "21 авг. 2018 г.",
			expected: "21.08.2018",
		},
		{
			name:     "russian may genitive",
			raw:      "5 мая 2020",
			expected: "05.05.2020",
		},
		{
			name:     "single digit day padded",
			raw:      "7 Jan, 2004",
			expected: "07.01.2004",
		},
		{
			name:     "unrecognized passthrough",
			raw:      "garbage",
			expected: "garbage",
		},
		{
			name:     "unknown month passthrough",
			raw:      "16 Xxx 2012",
			expected: "16 Xxx 2012",
		},
		{
			name:     "coming soon passthrough",
			raw:      "Coming soon to early access",
			expected: "Coming soon to early access",
		},
		{
			name:     "empty passthrough",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDate(tt.raw))
		})
	}
}
