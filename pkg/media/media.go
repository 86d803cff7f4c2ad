// Package media inspects the raster images placed on slides: background
// templates and graduate photos.
//
// [Library] decodes image headers once per path and remembers the result,
// so a template used on two hundred slides is read once. It also hands out
// the raw bytes for embedding and converts formats office documents cannot
// show (BMP, TIFF, WebP) to PNG.
//
// All methods are safe for concurrent use.
package media

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes an image file.
type Info struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"` // as registered with image: "jpeg", "png", ...
}

// Prober reports image dimensions.
type Prober interface {
	Probe(path string) (Info, error)
}

// Asset is an image ready for embedding.
type Asset struct {
	Data        []byte
	Ext         string // file extension without dot
	ContentType string
	Hash        string // hex SHA-256 of Data
}

type probeResult struct {
	info Info
	err  error
}

// Library probes and loads images, memoising by path.
type Library struct {
	mu     sync.Mutex
	probes map[string]probeResult
	assets map[string]*Asset
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		probes: make(map[string]probeResult),
		assets: make(map[string]*Asset),
	}
}

// Probe decodes the image header at path. Failures are remembered too.
func (l *Library) Probe(path string) (Info, error) {
	l.mu.Lock()
	if r, ok := l.probes[path]; ok {
		l.mu.Unlock()
		return r.info, r.err
	}
	l.mu.Unlock()

	info, err := probe(path)

	l.mu.Lock()
	l.probes[path] = probeResult{info: info, err: err}
	l.mu.Unlock()
	return info, err
}

func probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("decode %s: empty image", path)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Asset reads the image at path for embedding. JPEG, PNG and GIF are
// embedded as-is; other formats are re-encoded as PNG.
func (l *Library) Asset(path string) (*Asset, error) {
	l.mu.Lock()
	if a, ok := l.assets[path]; ok {
		l.mu.Unlock()
		return a, nil
	}
	l.mu.Unlock()

	info, err := l.Probe(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	a := &Asset{Data: data}
	switch info.Format {
	case "jpeg":
		a.Ext, a.ContentType = "jpeg", "image/jpeg"
	case "png":
		a.Ext, a.ContentType = "png", "image/png"
	case "gif":
		a.Ext, a.ContentType = "gif", "image/gif"
	default:
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("re-encode %s: %w", path, err)
		}
		a.Data, a.Ext, a.ContentType = buf.Bytes(), "png", "image/png"
	}
	a.Hash = Hash(a.Data)

	l.mu.Lock()
	l.assets[path] = a
	l.mu.Unlock()
	return a, nil
}

// Decode loads the full image at path.
func (l *Library) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Hash computes the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
