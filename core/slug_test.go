package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Acme Corp", "acme-corp"},
		{"already normalized", "acme-corp", "acme-corp"},
		{"punctuation collapses", "Acme, Inc.", "acme-inc"},
		{"consecutive separators", "Acme -- Corp!!", "acme-corp"},
		{"leading and trailing noise", "  Acme Corp  ", "acme-corp"},
		{"uppercase", "STRIPE", "stripe"},
		{"digits preserved", "Area 51 Labs", "area-51-labs"},
		{"url-ish input", "https://acme.example.com", "https-acme-example-com"},
		{"only separators", "---", ""},
		{"empty", "", ""},
		{"unicode collapses to hyphen", "café résumé", "caf-r-sum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Acme Corp", "Vercel", "Open AI, Inc.", "a--b--c"}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "slugify must be a fixpoint on its own output")
	}
}

func TestDigestFromContent(t *testing.T) {
	a := DigestFromContent("homepage text")
	b := DigestFromContent("homepage text")
	c := DigestFromContent("different text")

	assert.Equal(t, a, b, "identical content must produce identical digests")
	assert.NotEqual(t, a, c)
	assert.NotZero(t, a)
}
