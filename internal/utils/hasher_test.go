package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashIsStable(t *testing.T) {
	a := Hash("https://repo.cdn.prismic.io/api/v2/documents/search?page=2")
	b := Hash("https://repo.cdn.prismic.io/api/v2/documents/search?page=2")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, Hash("https://repo.cdn.prismic.io/api/v2/documents/search?page=3"))
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"como-utilizar-hooks", true},
		{"post_1", true},
		{"2021-review", true},
		{"", false},
		{"-leading", false},
		{"Upper-Case", false},
		{`quote"injection`, false},
		{"with space", false},
		{strings.Repeat("a", MaxSlugLength+1), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidSlug(tt.slug), tt.slug)
	}
}
