package sink

import (
	"context"

	"github.com/matzehuels/gradslides/pkg/render"
	"github.com/matzehuels/gradslides/pkg/slide"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	pptxOpts []PPTXOption
}

// WithPDFPPTXOptions passes options through to the underlying PPTX renderer.
func WithPDFPPTXOptions(opts ...PPTXOption) PDFOption {
	return func(r *pdfRenderer) { r.pptxOpts = opts }
}

// RenderPDF renders the deck as PDF via PPTX conversion.
// Requires LibreOffice: brew install --cask libreoffice (macOS), apt install libreoffice-impress (Linux).
func RenderPDF(ctx context.Context, d *slide.Deck, src AssetSource, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	pptx, err := RenderPPTX(d, src, r.pptxOpts...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, pptx)
}
