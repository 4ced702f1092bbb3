package tuning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords_Basic(t *testing.T) {
	keywords := ExtractKeywords("Quantum Computing Explained Simply")

	assert.Equal(t, []string{"quantum", "computing", "explained", "simply"}, keywords)
}

func TestExtractKeywords_StripsStopWordsAndPunctuation(t *testing.T) {
	keywords := ExtractKeywords("The BEST Goals of the Season! (Official Video)")

	assert.Equal(t, []string{"goals", "season"}, keywords)
}

func TestExtractKeywords_SkipsYearsAndShortTokens(t *testing.T) {
	keywords := ExtractKeywords("F1 2024 Monaco GP Highlights")

	// "f1" and "gp" are too short, "2024" is a year
	assert.Equal(t, []string{"monaco", "highlights"}, keywords)
}

func TestExtractKeywords_CapsAtFive(t *testing.T) {
	keywords := ExtractKeywords("alpha bravo charlie delta echo foxtrot golf")

	assert.Len(t, keywords, 5)
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta", "echo"}, keywords)
}

func TestExtractKeywords_Deduplicates(t *testing.T) {
	keywords := ExtractKeywords("space space SPACE station")

	assert.Equal(t, []string{"space", "station"}, keywords)
}

func TestExtractKeywords_KeepsNonASCII(t *testing.T) {
	keywords := ExtractKeywords("Fútbol resumen jornada")

	assert.Contains(t, keywords, "fútbol")
	assert.Contains(t, keywords, "resumen")
}

func TestExtractKeywords_EmptyTitle(t *testing.T) {
	assert.Nil(t, ExtractKeywords(""))
}

func TestIsYearToken(t *testing.T) {
	assert.True(t, isYearToken("1999"))
	assert.True(t, isYearToken("2026"))
	assert.False(t, isYearToken("1800"))
	assert.False(t, isYearToken("2126"))
	assert.False(t, isYearToken("202"))
	assert.False(t, isYearToken("20x6"))
}
