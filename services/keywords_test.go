package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	t.Run("drops stop words and short tokens", func(t *testing.T) {
		got := ExtractKeywords("An Overview of Machine Learning")
		assert.Equal(t, []string{"machine", "learning"}, got)
	})

	t.Run("lowercases and splits on punctuation", func(t *testing.T) {
		got := ExtractKeywords("Deep-Learning: Methods, Trends & Applications")
		assert.Equal(t, []string{"deep", "learning", "methods", "trends", "applications"}, got)
	})

	t.Run("dedups preserving first occurrence", func(t *testing.T) {
		got := ExtractKeywords("Learning about Learning Systems")
		assert.Equal(t, []string{"learning", "systems"}, got)
	})

	t.Run("short tokens removed", func(t *testing.T) {
		got := ExtractKeywords("On AI in IoT")
		assert.Equal(t, []string{"iot"}, got)
	})

	t.Run("empty title yields empty set", func(t *testing.T) {
		assert.Empty(t, ExtractKeywords(""))
		assert.Empty(t, ExtractKeywords("of the an"))
	})
}
