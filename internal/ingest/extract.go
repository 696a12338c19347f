package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	"github.com/pageza/menuqr/backend/internal/apperr"
)

const (
	// MinExtractedChars is the shortest trimmed text worth sending on.
	MinExtractedChars = 10
	// MaxExtractedChars bounds the text placed in the extraction prompt.
	MaxExtractedChars = 8000
	// MaxUploadBytes bounds the size of an uploaded menu file.
	MaxUploadBytes = 10 << 20
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

const (
	mimePDF   = "application/pdf"
	mimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeTXT   = "text/plain"
	mimeZip   = "application/zip"
	mimeOctet = "application/octet-stream"
)

var (
	errUnsupported  = apperr.New(apperr.KindUnsupportedFormat, "Unsupported file type. Please upload a PDF, DOCX, or TXT file.")
	errInsufficient = apperr.New(apperr.KindInsufficientContent, "Could not extract enough text from the file. Please check the file content.")
)

// DetectFormat identifies an upload from its content and the format it claims
// through the file extension (or, without one, the declared content type).
// PDF and DOCX content is recognised whatever the claim. Otherwise the claim
// must agree with the content: text for txt, and for pdf or docx nothing that
// sniffs as another known type. Anything else is rejected.
func DetectFormat(data []byte, filename, declared string) (Format, error) {
	detected := mimetype.Detect(data)
	switch {
	case detected.Is(mimePDF):
		return FormatPDF, nil
	case detected.Is(mimeDOCX):
		return FormatDOCX, nil
	}

	textual := isText(detected)
	claimed, named := claimedFormat(filename, declared)
	switch claimed {
	case FormatPDF:
		// a damaged pdf still goes to the reader and fails there
		if textual || detected.Is(mimeOctet) {
			return FormatPDF, nil
		}
	case FormatDOCX:
		if detected.Is(mimeZip) || detected.Is(mimeOctet) {
			return FormatDOCX, nil
		}
	case FormatTXT:
		if textual {
			return FormatTXT, nil
		}
	case "":
		if !named && textual {
			return FormatTXT, nil
		}
	}
	return "", errUnsupported
}

// claimedFormat returns the format named by the extension, or by the declared
// content type when there is no extension. named reports whether the upload
// claimed any type at all, supported or not.
func claimedFormat(filename, declared string) (format Format, named bool) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		switch ext {
		case ".pdf":
			return FormatPDF, true
		case ".docx":
			return FormatDOCX, true
		case ".txt":
			return FormatTXT, true
		}
		return "", true
	}

	switch mime := strings.ToLower(strings.TrimSpace(strings.SplitN(declared, ";", 2)[0])); mime {
	case mimePDF:
		return FormatPDF, true
	case mimeDOCX:
		return FormatDOCX, true
	case mimeTXT:
		return FormatTXT, true
	case "", mimeOctet:
		return "", false
	}
	return "", true
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(mimeTXT) {
			return true
		}
	}
	return false
}

// ExtractText pulls the plain text out of an uploaded menu file and applies
// the length rules: too little text is rejected, too much is cut at
// MaxExtractedChars.
func ExtractText(data []byte, filename, declared string) (string, Format, error) {
	format, err := DetectFormat(data, filename, declared)
	if err != nil {
		return "", "", err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = pdfText(data)
	case FormatDOCX:
		text, err = docxText(data)
	case FormatTXT:
		text = strings.ToValidUTF8(string(data), "")
	}
	if err != nil {
		return "", format, apperr.Wrap(apperr.KindInsufficientContent, errInsufficient.Message, err)
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinExtractedChars {
		return "", format, errInsufficient
	}
	return Truncate(text, MaxExtractedChars), format, nil
}

// Truncate keeps the first n characters of s.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func pdfText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

// docxText reads the paragraphs of word/document.xml, one line per paragraph.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docx has no word/document.xml")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var b strings.Builder
	dec := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
