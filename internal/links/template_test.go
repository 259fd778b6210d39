package links_test

import (
	"testing"

	"github.com/fivetwenty-io/harvest-client/internal/links"
	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		vars     map[string]string
		expected string
	}{
		{
			name:     "single variable",
			template: "/concept/{id}",
			vars:     map[string]string{"id": "10"},
			expected: "/concept/10",
		},
		{
			name:     "missing variable is left untouched",
			template: "/a/{x}/{y}",
			vars:     map[string]string{"x": "1"},
			expected: "/a/1/{y}",
		},
		{
			name:     "repeated variable",
			template: "/{id}/copy/{id}",
			vars:     map[string]string{"id": "7"},
			expected: "/7/copy/7",
		},
		{
			name:     "no escaping",
			template: "/export/{type}/",
			vars:     map[string]string{"type": "csv?x=1 2"},
			expected: "/export/csv?x=1 2/",
		},
		{
			name:     "inserted text is not scanned again",
			template: "/a/{x}/{y}",
			vars:     map[string]string{"x": "{y}", "y": "2"},
			expected: "/a/{y}/2",
		},
		{
			name:     "nil vars",
			template: "/concept/{id}",
			vars:     nil,
			expected: "/concept/{id}",
		},
		{
			name:     "absolute url",
			template: "https://harvest.example.org/api/views/{id}/",
			vars:     map[string]string{"id": "session"},
			expected: "https://harvest.example.org/api/views/session/",
		},
		{
			name:     "non word tokens are ignored",
			template: "/a/{not-a-var}/{x}",
			vars:     map[string]string{"not-a-var": "no", "x": "1"},
			expected: "/a/{not-a-var}/1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, links.Substitute(tt.template, tt.vars))
		})
	}
}
