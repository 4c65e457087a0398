package fulltext

import (
	"archive/zip"
	"bytes"

	"github.com/gabriel-vasile/mimetype"
)

type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatDOCX
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatDOCX:
		return "docx"
	default:
		return "unknown"
	}
}

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Sniff classifies a document by its content; file names and headers are not consulted.
func Sniff(data []byte) (Format, string) {
	m := mimetype.Detect(data)

	switch {
	case m.Is("application/pdf"):
		return FormatPDF, m.String()
	case m.Is(docxMIME):
		return FormatDOCX, m.String()
	case m.Is("application/zip") && hasWordDocument(data):
		// some generators order zip entries in a way the detector does not expect
		return FormatDOCX, docxMIME
	}
	return FormatUnknown, m.String()
}

func hasWordDocument(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return true
		}
	}
	return false
}
