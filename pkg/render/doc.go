// Package render turns composed slide decks into files.
//
// # Overview
//
// Slides are composed once, as [slide.Deck] values, and then handed to one
// or more sinks in the [sink] subpackage:
//
//   - PPTX: the presentation shown during the ceremony
//   - JSON: the slide geometry, for layout checks and tests
//   - SVG / PNG: per-slide previews for proofreading without an office suite
//   - PDF: a print handout, converted from the PPTX
//
// # Format Conversion
//
// [ToPDF] converts PPTX bytes to PDF by running LibreOffice in headless
// mode. It is the only sink with an external dependency:
//
//	pptx, err := sink.RenderPPTX(deck, lib)
//	pdf, err := render.ToPDF(ctx, pptx)
//
// [slide.Deck]: github.com/matzehuels/gradslides/pkg/slide.Deck
// [sink]: github.com/matzehuels/gradslides/pkg/render/sink
package render
