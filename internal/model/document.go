package model

// ContentKind identifies how a raw document's bytes should be interpreted.
type ContentKind string

const (
	// KindText is plain UTF-8 text.
	KindText ContentKind = "text"
	// KindPDFText is text already extracted from a PDF by the caller.
	// The pipeline treats it like plain text; binary PDF decoding is an
	// external-collaborator concern.
	KindPDFText ContentKind = "pdf-text"
	// KindImage is an encoded raster image (PNG, JPEG, GIF, ...).
	KindImage ContentKind = "image"
)

// RawDocument is the opaque per-invocation input to the extraction pipeline.
// It is supplied by the caller and never mutated.
type RawDocument struct {
	Content []byte
	Kind    ContentKind
	MIME    string // e.g. "image/png"; empty for text kinds
}

// IsImage reports whether the document should take the vision path.
func (d RawDocument) IsImage() bool {
	return d.Kind == KindImage
}

// Text returns the document content as a string for text kinds, and ""
// for image documents (which have no scannable text).
func (d RawDocument) Text() string {
	if d.IsImage() {
		return ""
	}
	return string(d.Content)
}
