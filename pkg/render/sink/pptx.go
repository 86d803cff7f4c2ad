package sink

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/gradslides/pkg/layout"
	"github.com/matzehuels/gradslides/pkg/media"
	"github.com/matzehuels/gradslides/pkg/slide"
)

// AssetSource supplies image bytes for embedding.
type AssetSource interface {
	Asset(path string) (*media.Asset, error)
}

// Page size limits of the presentation format, in EMU.
const (
	minSlideSize = 914400
	maxSlideSize = 51206400
)

const (
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"

	relOfficeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtProps    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relPresProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"
	relViewProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/viewProps"
	relTableStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	ctPrefix = "application/vnd.openxmlformats-officedocument."

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// epoch is the timestamp stored for every zip entry so identical decks
// produce identical files.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// PPTXOption configures PPTX rendering via [RenderPPTX].
type PPTXOption func(*pptxRenderer)

type pptxRenderer struct {
	application string
	created     time.Time
}

// WithApplication sets the application name recorded in document properties.
func WithApplication(name string) PPTXOption { return func(r *pptxRenderer) { r.application = name } }

// WithCreated records a creation time in document properties. Without it
// the properties carry no timestamps.
func WithCreated(t time.Time) PPTXOption { return func(r *pptxRenderer) { r.created = t } }

type rel struct {
	id, typ, target string
}

type mediaPart struct {
	name  string // e.g. "image1.jpeg"
	asset *media.Asset
}

// RenderPPTX encodes d as a PowerPoint presentation.
//
// Every picture path is loaded through src; images with identical content
// are stored once. The output depends only on d and the image bytes.
func RenderPPTX(d *slide.Deck, src AssetSource, opts ...PPTXOption) ([]byte, error) {
	r := pptxRenderer{application: "gradslides"}
	for _, opt := range opts {
		opt(&r)
	}

	if d.Width < minSlideSize || d.Width > maxSlideSize || d.Height < minSlideSize || d.Height > maxSlideSize {
		return nil, fmt.Errorf("pptx: page %dx%d EMU outside the supported range %d..%d", d.Width, d.Height, minSlideSize, maxSlideSize)
	}

	// Assign media names by content in first-use order.
	var parts []mediaPart
	byHash := map[string]string{}
	byPath := map[string]string{}
	for _, path := range d.Images() {
		a, err := src.Asset(path)
		if err != nil {
			return nil, fmt.Errorf("pptx: image %s: %w", path, err)
		}
		name, ok := byHash[a.Hash]
		if !ok {
			name = fmt.Sprintf("image%d.%s", len(parts)+1, a.Ext)
			byHash[a.Hash] = name
			parts = append(parts, mediaPart{name: name, asset: a})
		}
		byPath[path] = name
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name string, data []byte) error {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: epoch})
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	files := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", contentTypes(d, parts)},
		{"_rels/.rels", relationships([]rel{
			{"rId1", relOfficeDoc, "ppt/presentation.xml"},
			{"rId2", relCoreProps, "docProps/core.xml"},
			{"rId3", relExtProps, "docProps/app.xml"},
		})},
		{"docProps/core.xml", coreProps(d.Title, r)},
		{"docProps/app.xml", appProps(d, r)},
		{"ppt/presentation.xml", presentation(d)},
		{"ppt/_rels/presentation.xml.rels", presentationRels(d)},
		{"ppt/presProps.xml", []byte(xmlHeader + `<p:presentationPr xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"/>`)},
		{"ppt/viewProps.xml", []byte(xmlHeader + `<p:viewPr xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"/>`)},
		{"ppt/tableStyles.xml", []byte(xmlHeader + `<a:tblStyleLst xmlns:a="` + nsA + `" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`)},
		{"ppt/theme/theme1.xml", []byte(themeXML)},
		{"ppt/slideMasters/slideMaster1.xml", []byte(slideMasterXML)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", relationships([]rel{
			{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"},
			{"rId2", relTheme, "../theme/theme1.xml"},
		})},
		{"ppt/slideLayouts/slideLayout1.xml", []byte(slideLayoutXML)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", relationships([]rel{
			{"rId1", relSlideMaster, "../slideMasters/slideMaster1.xml"},
		})},
	}
	for _, f := range files {
		if err := write(f.name, f.data); err != nil {
			return nil, fmt.Errorf("pptx: %s: %w", f.name, err)
		}
	}

	for i, s := range d.Slides {
		body, rels := renderSlide(s, byPath)
		n := i + 1
		if err := write(fmt.Sprintf("ppt/slides/slide%d.xml", n), body); err != nil {
			return nil, fmt.Errorf("pptx: slide %d: %w", n, err)
		}
		if err := write(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), relationships(rels)); err != nil {
			return nil, fmt.Errorf("pptx: slide %d rels: %w", n, err)
		}
	}

	for _, p := range parts {
		if err := write("ppt/media/"+p.name, p.asset.Data); err != nil {
			return nil, fmt.Errorf("pptx: media %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("pptx: %w", err)
	}
	return buf.Bytes(), nil
}

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func relationships(rels []rel) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<Relationships xmlns="%s">`, nsRel)
	for _, r := range rels {
		fmt.Fprintf(&buf, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.id, r.typ, esc(r.target))
	}
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}

func contentTypes(d *slide.Deck, parts []mediaPart) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	buf.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	buf.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	seen := map[string]bool{}
	for _, p := range parts {
		if seen[p.asset.Ext] {
			continue
		}
		seen[p.asset.Ext] = true
		fmt.Fprintf(&buf, `<Default Extension="%s" ContentType="%s"/>`, p.asset.Ext, p.asset.ContentType)
	}

	override := func(part, ct string) {
		fmt.Fprintf(&buf, `<Override PartName="%s" ContentType="%s"/>`, part, ct)
	}
	override("/ppt/presentation.xml", ctPrefix+"presentationml.presentation.main+xml")
	override("/ppt/slideMasters/slideMaster1.xml", ctPrefix+"presentationml.slideMaster+xml")
	override("/ppt/slideLayouts/slideLayout1.xml", ctPrefix+"presentationml.slideLayout+xml")
	for i := range d.Slides {
		override(fmt.Sprintf("/ppt/slides/slide%d.xml", i+1), ctPrefix+"presentationml.slide+xml")
	}
	override("/ppt/theme/theme1.xml", ctPrefix+"theme+xml")
	override("/ppt/presProps.xml", ctPrefix+"presentationml.presProps+xml")
	override("/ppt/viewProps.xml", ctPrefix+"presentationml.viewProps+xml")
	override("/ppt/tableStyles.xml", ctPrefix+"presentationml.tableStyles+xml")
	override("/docProps/core.xml", "application/vnd.openxmlformats-package.core-properties+xml")
	override("/docProps/app.xml", ctPrefix+"extended-properties+xml")
	buf.WriteString(`</Types>`)
	return buf.Bytes()
}

func coreProps(title string, r pptxRenderer) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	if title != "" {
		fmt.Fprintf(&buf, `<dc:title>%s</dc:title>`, esc(title))
	}
	fmt.Fprintf(&buf, `<dc:creator>%s</dc:creator>`, esc(r.application))
	if !r.created.IsZero() {
		ts := r.created.UTC().Format(time.RFC3339)
		fmt.Fprintf(&buf, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, ts)
		fmt.Fprintf(&buf, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, ts)
	}
	buf.WriteString(`</cp:coreProperties>`)
	return buf.Bytes()
}

func appProps(d *slide.Deck, r pptxRenderer) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" ` +
		`xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`)
	fmt.Fprintf(&buf, `<Application>%s</Application><Slides>%d</Slides>`, esc(r.application), len(d.Slides))
	buf.WriteString(`</Properties>`)
	return buf.Bytes()
}

func presentation(d *slide.Deck) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">`, nsA, nsR, nsP)
	buf.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if len(d.Slides) > 0 {
		buf.WriteString(`<p:sldIdLst>`)
		for i := range d.Slides {
			fmt.Fprintf(&buf, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
		}
		buf.WriteString(`</p:sldIdLst>`)
	}
	fmt.Fprintf(&buf, `<p:sldSz cx="%d" cy="%d"/>`, d.Width, d.Height)
	buf.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	buf.WriteString(`</p:presentation>`)
	return buf.Bytes()
}

func presentationRels(d *slide.Deck) []byte {
	rels := []rel{{"rId1", relSlideMaster, "slideMasters/slideMaster1.xml"}}
	for i := range d.Slides {
		rels = append(rels, rel{fmt.Sprintf("rId%d", i+2), relSlide, fmt.Sprintf("slides/slide%d.xml", i+1)})
	}
	n := len(d.Slides) + 2
	for _, r := range []struct{ typ, target string }{
		{relPresProps, "presProps.xml"},
		{relViewProps, "viewProps.xml"},
		{relTheme, "theme/theme1.xml"},
		{relTableStyles, "tableStyles.xml"},
	} {
		rels = append(rels, rel{fmt.Sprintf("rId%d", n), r.typ, r.target})
		n++
	}
	return relationships(rels)
}

const groupProps = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

var alignCodes = map[layout.Align]string{
	layout.AlignLeft:   "l",
	layout.AlignCenter: "ctr",
	layout.AlignRight:  "r",
}

func renderSlide(s *slide.Slide, media map[string]string) ([]byte, []rel) {
	rels := []rel{{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"}}
	imageRel := map[string]string{}

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	buf.WriteString(`<p:cSld><p:spTree>` + groupProps)

	for i, sh := range s.Shapes {
		id := i + 2
		switch sh.Kind {
		case slide.KindPicture:
			name := media[sh.Image]
			rid, ok := imageRel[name]
			if !ok {
				rid = fmt.Sprintf("rId%d", len(rels)+1)
				imageRel[name] = rid
				rels = append(rels, rel{rid, relImage, "../media/" + name})
			}
			renderPicture(&buf, id, sh, rid)
		case slide.KindText:
			renderTextBox(&buf, id, sh)
		}
	}

	buf.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return buf.Bytes(), rels
}

func writeXfrm(buf *bytes.Buffer, r layout.Rect) {
	fmt.Fprintf(buf, `<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, r.X, r.Y, r.W, r.H)
}

func renderPicture(buf *bytes.Buffer, id int, sh slide.Shape, rid string) {
	buf.WriteString(`<p:pic><p:nvPicPr>`)
	fmt.Fprintf(buf, `<p:cNvPr id="%d" name="%s"/>`, id, esc(sh.Name))
	buf.WriteString(`<p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`)
	fmt.Fprintf(buf, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, rid)
	buf.WriteString(`<p:spPr>`)
	writeXfrm(buf, sh.Rect)
	buf.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
}

func renderTextBox(buf *bytes.Buffer, id int, sh slide.Shape) {
	buf.WriteString(`<p:sp><p:nvSpPr>`)
	fmt.Fprintf(buf, `<p:cNvPr id="%d" name="%s"/>`, id, esc(sh.Name))
	buf.WriteString(`<p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr>`)
	writeXfrm(buf, sh.Rect)
	buf.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	buf.WriteString(`<p:txBody><a:bodyPr wrap="square" rtlCol="0"><a:spAutoFit/></a:bodyPr><a:lstStyle/>`)

	st := sh.Style
	algn := alignCodes[st.Align]
	if algn == "" {
		algn = "l"
	}
	bold := 0
	if st.Bold {
		bold = 1
	}
	for _, p := range sh.Paragraphs {
		fmt.Fprintf(buf, `<a:p><a:pPr algn="%s"/><a:r>`, algn)
		fmt.Fprintf(buf, `<a:rPr lang="id-ID" sz="%d" b="%d" dirty="0">`, int(st.Size*100+0.5), bold)
		fmt.Fprintf(buf, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, strings.ToUpper(st.Color))
		fmt.Fprintf(buf, `<a:latin typeface="%s"/><a:cs typeface="%s"/>`, esc(st.Font), esc(st.Font))
		fmt.Fprintf(buf, `</a:rPr><a:t>%s</a:t></a:r></a:p>`, esc(p))
	}
	buf.WriteString(`</p:txBody></p:sp>`)
}
