package pdf

import (
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
)

// DefaultFamily is the logical family name documents are typeset in when a
// FontSource is configured. The UTF-8 font is required for Serbian Latin
// glyphs; the built-in core fonts only cover Latin-1.
const DefaultFamily = "DejaVu"

// CoreFamily is the built-in font used when no FontSource is configured
const CoreFamily = "Helvetica"

// FontSource supplies TTF bytes for the document typeface. Bold may return
// (nil, nil) when no dedicated bold cut exists; the regular bytes are then
// registered for the bold style as well.
type FontSource interface {
	Regular(ctx context.Context) ([]byte, error)
	Bold(ctx context.Context) ([]byte, error)
}

// FontLoadError is fatal to a render: without the intended font every wrap
// computation downstream would be based on wrong glyph metrics.
type FontLoadError struct {
	Err error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("font load failed: %v", e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// FontRegistry registers the document typeface with a drawing surface. Its
// lifetime is one document: a second Register call for the same family is a
// no-op returning the already-resolved family name.
type FontRegistry struct {
	source     FontSource
	registered map[string]string
}

func NewFontRegistry(source FontSource) *FontRegistry {
	return &FontRegistry{
		source:     source,
		registered: make(map[string]string),
	}
}

// Register loads the typeface into doc under the logical family name and
// returns the family to pass to SetFont. With no source configured it
// resolves to the built-in core family without any I/O.
func (r *FontRegistry) Register(ctx context.Context, doc *gofpdf.Fpdf, family string) (string, error) {
	if resolved, ok := r.registered[family]; ok {
		return resolved, nil
	}

	if r.source == nil {
		r.registered[family] = CoreFamily
		return CoreFamily, nil
	}

	regular, err := r.source.Regular(ctx)
	if err != nil {
		return "", &FontLoadError{Err: err}
	}
	if len(regular) == 0 {
		return "", &FontLoadError{Err: fmt.Errorf("empty font payload for %q", family)}
	}
	doc.AddUTF8FontFromBytes(family, "", regular)

	bold, err := r.source.Bold(ctx)
	if err != nil || len(bold) == 0 {
		bold = regular
	}
	doc.AddUTF8FontFromBytes(family, "B", bold)

	if doc.Err() {
		return "", &FontLoadError{Err: doc.Error()}
	}

	r.registered[family] = family
	return family, nil
}
