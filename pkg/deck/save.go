package deck

import (
	"context"
	"fmt"

	"github.com/matzehuels/gradslides/pkg/buildinfo"
	"github.com/matzehuels/gradslides/pkg/errors"
	"github.com/matzehuels/gradslides/pkg/render/sink"
	"github.com/matzehuels/gradslides/pkg/slide"
)

// save renders d in format and writes it next to stem. Single-document
// formats write stem.<format>; preview formats write one file per slide at
// dpi, stem_001.<format> and so on. It returns the written paths and
// their total size.
func (r *Runner) save(ctx context.Context, d *slide.Deck, stem, format, name string, dpi float64) ([]string, int, error) {
	docs, err := r.render(ctx, d, format, name, dpi)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s as %s", name, format)
	}

	var (
		paths []string
		size  int
	)
	for i, data := range docs {
		path := stem + "." + format
		if len(docs) > 1 || isPreview(format) {
			path = fmt.Sprintf("%s_%03d.%s", stem, i+1, format)
		}
		if err := writeFile(path, data); err != nil {
			return paths, size, err
		}
		paths = append(paths, path)
		size += len(data)
	}
	return paths, size, nil
}

func isPreview(format string) bool {
	return format == FormatSVG || format == FormatPNG
}

func (r *Runner) render(ctx context.Context, d *slide.Deck, format, name string, dpi float64) ([][]byte, error) {
	pptxOpts := []sink.PPTXOption{sink.WithApplication(buildinfo.Generator())}
	switch format {
	case FormatPPTX:
		data, err := sink.RenderPPTX(d, r.Media, pptxOpts...)
		return [][]byte{data}, err
	case FormatJSON:
		data, err := sink.RenderJSON(d, sink.WithJSONPartition(name), sink.WithJSONGenerator(buildinfo.Generator()))
		return [][]byte{data}, err
	case FormatPDF:
		data, err := sink.RenderPDF(ctx, d, r.Media, sink.WithPDFPPTXOptions(pptxOpts...))
		return [][]byte{data}, err
	case FormatSVG:
		return sink.RenderSVG(d, r.Media, sink.WithSVGDPI(dpi))
	case FormatPNG:
		return sink.RenderPNG(d, r.Media, sink.WithPNGDPI(dpi))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
