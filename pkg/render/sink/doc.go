// Package sink provides output format renderers for slide decks.
//
// # Overview
//
// A "sink" turns a composed [slide.Deck] into bytes. This package provides:
//
//   - PPTX: the presentation shown during the ceremony
//   - JSON: slide geometry and text, without image data
//   - SVG: one vector preview per slide, images inlined
//   - PNG: one raster preview per slide, drawn with the embedded Go fonts
//   - PDF: a print handout (requires LibreOffice)
//
// Image bytes come from an [AssetSource] (PPTX, SVG, PDF) or a [Decoder]
// (PNG). [media.Library] satisfies both.
//
// # PPTX Output
//
// [RenderPPTX] writes a minimal Office Open XML package: one blank master,
// one blank layout, and one slide per graduate. Pictures are stretched to
// their shape rectangle; text boxes carry a single run per paragraph with
// the font, size, weight and color from the layout.
//
//	data, err := sink.RenderPPTX(deck, lib, sink.WithApplication(buildinfo.Generator()))
//
// Identical images are stored once, and zip timestamps are fixed, so the same
// deck always produces the same bytes.
//
// # Previews
//
// [RenderSVG] and [RenderPNG] return one document per slide. They approximate
// the office renderer closely enough to spot overflowing names and a
// misplaced photo frame; [WithFrames] outlines the boxes.
//
// [slide.Deck]: github.com/matzehuels/gradslides/pkg/slide.Deck
// [media.Library]: github.com/matzehuels/gradslides/pkg/media.Library
package sink
