package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, path string, w, h int, encode func(*os.File, image.Image) error) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, encode(f, img))
	require.NoError(t, f.Close())
}

func encodePNG(f *os.File, img image.Image) error  { return png.Encode(f, img) }
func encodeJPEG(f *os.File, img image.Image) error { return jpeg.Encode(f, img, nil) }
func encodeBMP(f *os.File, img image.Image) error  { return bmp.Encode(f, img) }

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "bg.png")
	jpgPath := filepath.Join(dir, "photo.jpg")
	writeImage(t, pngPath, 40, 30, encodePNG)
	writeImage(t, jpgPath, 12, 16, encodeJPEG)

	lib := NewLibrary()

	info, err := lib.Probe(pngPath)
	require.NoError(t, err)
	assert.Equal(t, Info{Width: 40, Height: 30, Format: "png"}, info)

	info, err = lib.Probe(jpgPath)
	require.NoError(t, err)
	assert.Equal(t, Info{Width: 12, Height: 16, Format: "jpeg"}, info)
}

func TestProbeMemoises(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.png")
	writeImage(t, path, 8, 8, encodePNG)

	lib := NewLibrary()
	_, err := lib.Probe(path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	info, err := lib.Probe(path)
	require.NoError(t, err, "second probe is served from memory")
	assert.Equal(t, 8, info.Width)
}

func TestProbeErrors(t *testing.T) {
	dir := t.TempDir()
	lib := NewLibrary()

	_, err := lib.Probe(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = lib.Probe(bad)
	assert.Error(t, err)
}

func TestAsset(t *testing.T) {
	dir := t.TempDir()
	jpgPath := filepath.Join(dir, "photo.jpg")
	bmpPath := filepath.Join(dir, "photo.bmp")
	writeImage(t, jpgPath, 10, 10, encodeJPEG)
	writeImage(t, bmpPath, 10, 5, encodeBMP)

	lib := NewLibrary()

	a, err := lib.Asset(jpgPath)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", a.Ext)
	assert.Equal(t, "image/jpeg", a.ContentType)
	assert.Len(t, a.Hash, 64)

	again, err := lib.Asset(jpgPath)
	require.NoError(t, err)
	assert.Same(t, a, again)

	b, err := lib.Asset(bmpPath)
	require.NoError(t, err)
	assert.Equal(t, "png", b.Ext, "BMP is converted to PNG")
	cfg, err := png.DecodeConfig(bytes.NewReader(b.Data))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, 5, cfg.Height)
}

func TestDecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	writeImage(t, path, 6, 4, encodePNG)

	img, err := NewLibrary().Decode(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())
}

func TestLibraryConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	writeImage(t, path, 20, 10, encodePNG)
	lib := NewLibrary()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info, err := lib.Probe(path)
			assert.NoError(t, err)
			assert.Equal(t, 20, info.Width)
			_, err = lib.Asset(path)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Hash(nil))
	assert.NotEqual(t, Hash([]byte("a")), Hash([]byte("b")))
}
