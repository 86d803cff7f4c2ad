package layout

// Office documents measure in English Metric Units.
const (
	EMUPerInch = 914400
	EMUPerCm   = 360000
	EMUPerPt   = 12700
)

// DefaultDPI converts image pixels to physical size.
const DefaultDPI = 96

// Rect is an axis-aligned rectangle in EMU.
type Rect struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
	W int64 `json:"w"`
	H int64 `json:"h"`
}

// Right returns the right edge.
func (r Rect) Right() int64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() int64 { return r.Y + r.H }

// Contains reports whether inner lies entirely within r.
func (r Rect) Contains(inner Rect) bool {
	return inner.X >= r.X && inner.Y >= r.Y &&
		inner.Right() <= r.Right() && inner.Bottom() <= r.Bottom()
}

// PixelsToEMU converts a pixel length at dpi.
func PixelsToEMU(px int, dpi float64) int64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return int64(float64(px) / dpi * EMUPerInch)
}

// EMUToPixels converts an EMU length back to pixels at dpi.
func EMUToPixels(emu int64, dpi float64) int {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return int(float64(emu) / EMUPerInch * dpi)
}

// Fit scales an image of imgW x imgH pixels to the largest size that fits
// inside frame without distortion and centres it there.
func Fit(frame Rect, imgW, imgH int) Rect {
	frameRatio := 1.0
	if frame.H != 0 {
		frameRatio = float64(frame.W) / float64(frame.H)
	}
	imgRatio := 1.0
	if imgH != 0 {
		imgRatio = float64(imgW) / float64(imgH)
	}

	var w, h int64
	if imgRatio > frameRatio {
		w = frame.W
		h = int64(float64(w) / imgRatio)
	} else {
		h = frame.H
		w = int64(float64(h) * imgRatio)
	}
	return Rect{
		X: frame.X + (frame.W-w)/2,
		Y: frame.Y + (frame.H-h)/2,
		W: w,
		H: h,
	}
}

// Center places an image at its native size at dpi, centred on frame. The
// second result reports whether it stays inside the frame.
func Center(frame Rect, imgW, imgH int, dpi float64) (Rect, bool) {
	w, h := PixelsToEMU(imgW, dpi), PixelsToEMU(imgH, dpi)
	r := Rect{
		X: frame.X + frame.W/2 - w/2,
		Y: frame.Y + frame.H/2 - h/2,
		W: w,
		H: h,
	}
	return r, frame.Contains(r)
}

// Place positions an image inside frame according to mode. In
// [PhotoCenter] mode an image that overflows the frame is fitted instead.
func Place(mode PhotoMode, frame Rect, imgW, imgH int, dpi float64) Rect {
	if mode == PhotoCenter {
		if r, ok := Center(frame, imgW, imgH, dpi); ok {
			return r
		}
	}
	return Fit(frame, imgW, imgH)
}
