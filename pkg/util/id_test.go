package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id1 := NewID()
	id2 := NewID()

	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2)
	assert.True(t, IsValidID(id1))
	assert.True(t, IsValidID(id2))
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{
			name: "Valid UUID",
			id:   "5f4c9a7e-8f60-4f4e-9f6a-1b2c3d4e5f60",
			want: true,
		},
		{
			name: "Empty string",
			id:   "",
			want: false,
		},
		{
			name: "Arbitrary string",
			id:   "not-a-uuid",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidID(tt.id))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "Simple title",
			title: "Hidden Bars of Lisbon",
			want:  "hidden-bars-of-lisbon",
		},
		{
			name:  "Punctuation and accents stripped",
			title: "Tokyo's Best Ramen, Ranked!",
			want:  "tokyo-s-best-ramen-ranked",
		},
		{
			name:  "Leading and trailing whitespace",
			title: "  Weekend in Porto  ",
			want:  "weekend-in-porto",
		},
		{
			name:  "Already a slug",
			title: "weekend-in-porto",
			want:  "weekend-in-porto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}
