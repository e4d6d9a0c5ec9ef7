// Package document turns caller-supplied bytes into a RawDocument with a
// detected content kind. Text is validated as UTF-8 and NFC-normalized so
// the date scanner sees one canonical form; images pass through untouched.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/hamza-els/CalHacks/internal/model"
)

// ErrBinaryPDF is returned for raw PDF bytes. The pipeline accepts text
// already extracted from a PDF (kind pdf-text); decoding the binary format
// belongs to the caller.
var ErrBinaryPDF = errors.New("document: binary PDF content; supply extracted text")

var imageMIMEs = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

var pdfMagic = []byte("%PDF")

// Detect builds a RawDocument from a filename hint and content bytes.
func Detect(name string, data []byte) (model.RawDocument, error) {
	ext := strings.ToLower(filepath.Ext(name))

	if mime, ok := imageMIMEs[ext]; ok || sniffImage(data) != "" {
		if !ok {
			mime = sniffImage(data)
		}
		return model.RawDocument{Content: data, Kind: model.KindImage, MIME: mime}, nil
	}

	if bytes.HasPrefix(data, pdfMagic) {
		return model.RawDocument{}, ErrBinaryPDF
	}

	if !utf8.Valid(data) {
		return model.RawDocument{}, fmt.Errorf("document: %s is not valid UTF-8 text", name)
	}

	kind := model.KindText
	if ext == ".pdf" {
		// Extension says PDF but the bytes are plain text: the caller
		// already ran text extraction.
		kind = model.KindPDFText
	}

	return model.RawDocument{Content: norm.NFC.Bytes(data), Kind: kind}, nil
}

// sniffImage recognizes common raster formats by magic bytes, for callers
// that hand over image data without a useful filename.
func sniffImage(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(data, []byte("\xff\xd8\xff")):
		return "image/jpeg"
	case bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a")):
		return "image/gif"
	default:
		return ""
	}
}
