package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAffiliationList(t *testing.T) {
	t.Run("splits on newlines and commas with dedup", func(t *testing.T) {
		got := ParseAffiliationList("Dept A, Dept B\nDept A")
		assert.Equal(t, []string{"Dept A", "Dept B"}, got)
	})

	t.Run("handles windows line endings", func(t *testing.T) {
		got := ParseAffiliationList("School of CS\r\nAI Research Group")
		assert.Equal(t, []string{"School of CS", "AI Research Group"}, got)
	})

	t.Run("trims and drops empty fragments", func(t *testing.T) {
		got := ParseAffiliationList("  Dept A ,, \n , Dept B  ")
		assert.Equal(t, []string{"Dept A", "Dept B"}, got)
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		assert.Empty(t, ParseAffiliationList(""))
		assert.Empty(t, ParseAffiliationList("  \n , "))
	})
}

func TestParsePublicationTitles(t *testing.T) {
	t.Run("strips numbering and blank lines, keeps order", func(t *testing.T) {
		got := ParsePublicationTitles("1. Alpha\n2. Beta\n\n3. Gamma")
		assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, got)
	})

	t.Run("normalizes line endings", func(t *testing.T) {
		got := ParsePublicationTitles("1. Alpha\r\n2. Beta\r3. Gamma")
		assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, got)
	})

	t.Run("keeps unnumbered lines", func(t *testing.T) {
		got := ParsePublicationTitles("A Study of Things\nAnother Study")
		assert.Equal(t, []string{"A Study of Things", "Another Study"}, got)
	})

	t.Run("does not dedup repeated titles", func(t *testing.T) {
		got := ParsePublicationTitles("1. Same\n2. Same")
		assert.Equal(t, []string{"Same", "Same"}, got)
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		assert.Empty(t, ParsePublicationTitles(""))
		assert.Empty(t, ParsePublicationTitles("  \r\n "))
	})
}
