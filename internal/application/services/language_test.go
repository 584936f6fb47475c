package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage_English(t *testing.T) {
	assert.Equal(t, "en", DetectLanguage("What are the symptoms of diabetes?"))
}

func TestDetectLanguage_Bangla(t *testing.T) {
	assert.Equal(t, "bn", DetectLanguage("আমার মাথা ব্যথা করছে"))
}

func TestDetectLanguage_MixedBelowThreshold(t *testing.T) {
	// A single Bangla word in a long English sentence stays under 0.2.
	assert.Equal(t, "en", DetectLanguage("I searched for the word ব্যথা in my medical dictionary yesterday evening"))
}

func TestDetectLanguage_Empty(t *testing.T) {
	assert.Equal(t, "en", DetectLanguage(""))
	assert.Equal(t, "en", DetectLanguage("   \n\t"))
}

func TestNormalizeLocale(t *testing.T) {
	assert.Equal(t, "bn", NormalizeLocale("bn", "hello"))
	assert.Equal(t, "en", NormalizeLocale("en", "আমার"))
	assert.Equal(t, "bn", NormalizeLocale("auto", "আমার মাথা ব্যথা"))
	assert.Equal(t, "en", NormalizeLocale("", "hello"))
	assert.Equal(t, "en", NormalizeLocale("fr", "bonjour"))
}
