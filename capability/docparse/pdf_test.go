package docparse

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/harborview/signals/capability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentSimplePDF(t *testing.T) {
	parser := NewPDFParser()

	doc, err := parser.ParseDocument(context.Background(), "pitch.pdf",
		buildTextPDF("Acme Corp builds rocket-powered anvils"))
	require.NoError(t, err)
	assert.Equal(t, "pitch.pdf", doc.Filename)
	assert.Equal(t, 1, doc.Pages)
	assert.Contains(t, doc.Text, "Acme Corp")
}

func TestParseDocumentRejectsNonPDF(t *testing.T) {
	parser := NewPDFParser()

	_, err := parser.ParseDocument(context.Background(), "notes.txt", []byte("plain text"))
	assert.ErrorIs(t, err, capability.ErrParseFailed)
}

func TestParseDocumentGarbageBytes(t *testing.T) {
	parser := NewPDFParser()

	_, err := parser.ParseDocument(context.Background(), "broken.pdf", []byte("not a pdf at all"))
	assert.ErrorIs(t, err, capability.ErrParseFailed)
}

func TestDecodePDFString(t *testing.T) {
	assert.Equal(t, "a(b)c", decodePDFString([]byte(`a\(b\)c`)))
	assert.Equal(t, "line\nbreak", decodePDFString([]byte(`line\nbreak`)))
	assert.Equal(t, " ", decodePDFString([]byte(`\040`)))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", cleanText("  a \n\n b\t c  "))
	assert.Equal(t, "", cleanText("   "))
}

// buildTextPDF creates a minimal valid single-page PDF with correct
// xref offsets so pdfcpu accepts it.
func buildTextPDF(text string) []byte {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "(", `\(`)
	escaped = strings.ReplaceAll(escaped, ")", `\)`)

	stream := "BT\n/F1 12 Tf\n72 720 Td\n(" + escaped + ") Tj\nET"

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	b.WriteString(fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		b.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	b.WriteString(fmt.Sprintf("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset))

	return []byte(b.String())
}
