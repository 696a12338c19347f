package ingest

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/menuqr/backend/internal/apperr"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))
	require.NoError(t, err)
	f, err = zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTextPlain(t *testing.T) {
	text, format, err := ExtractText([]byte("Hummus 38\nFalafel 30\n"), "menu.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, FormatTXT, format)
	assert.Equal(t, "Hummus 38\nFalafel 30\n", text)
}

func TestExtractTextDocx(t *testing.T) {
	data := buildDocx(t, "Hummus 38 AED", "Falafel 30 AED")

	text, format, err := ExtractText(data, "menu.docx", "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, format)
	assert.Equal(t, "Hummus 38 AED\nFalafel 30 AED\n", text)
}

func TestExtractTextRejectsUnsupported(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
	_, _, err := ExtractText(png, "menu.png", "image/png")
	assert.True(t, apperr.IsKind(err, apperr.KindUnsupportedFormat))
}

func TestExtractTextInsufficient(t *testing.T) {
	_, _, err := ExtractText([]byte("   short  \n"), "menu.txt", "text/plain")
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientContent))
}

func TestExtractTextBrokenPDF(t *testing.T) {
	_, format, err := ExtractText([]byte("this is definitely not a pdf document"), "menu.pdf", "")
	assert.Equal(t, FormatPDF, format)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientContent))
}

func TestExtractTextTruncates(t *testing.T) {
	text, _, err := ExtractText([]byte(strings.Repeat("a", 9000)), "menu.txt", "text/plain")
	require.NoError(t, err)
	assert.Len(t, text, MaxExtractedChars)
}

func TestTruncateCountsCharacters(t *testing.T) {
	assert.Equal(t, "ééé", Truncate("éééé", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
}

func TestDetectFormatByContent(t *testing.T) {
	format, err := DetectFormat([]byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"), "upload", "")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, format)
}

func TestDetectFormatChecksClaimAgainstContent(t *testing.T) {
	jpeg := []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	cases := []struct {
		name     string
		data     []byte
		filename string
		declared string
		want     Format
	}{
		{"markdown is not txt", []byte("# Menu\nHummus 38"), "menu.md", "text/markdown", ""},
		{"image named txt", jpeg, "menu.txt", "text/plain", ""},
		{"image declared pdf", jpeg, "", "application/pdf", ""},
		{"text in an executable", []byte("Hummus 38 AED"), "menu.exe", "", ""},
		{"text with other declared type", []byte("Hummus 38 AED"), "", "text/csv", ""},
		{"unnamed text", []byte("Hummus 38 AED"), "", "", FormatTXT},
		{"octet stream text", []byte("Hummus 38 AED"), "upload", "application/octet-stream", FormatTXT},
		{"declared txt", []byte("Hummus 38 AED"), "", "text/plain; charset=utf-8", FormatTXT},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			format, err := DetectFormat(tc.data, tc.filename, tc.declared)
			if tc.want == "" {
				assert.True(t, apperr.IsKind(err, apperr.KindUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, format)
		})
	}
}
