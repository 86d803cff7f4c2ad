package config

import (
	"github.com/matzehuels/gradslides/pkg/errors"
	"github.com/matzehuels/gradslides/pkg/layout"
)

// LayoutConfig selects a layout preset and overrides parts of it. Zero
// values keep the preset's value. A fields list replaces the preset's
// fields wholesale.
type LayoutConfig struct {
	Preset     string         `toml:"preset" validate:"omitempty,preset"`
	Units      layout.Unit    `toml:"units,omitempty" validate:"omitempty,oneof=cm in"`
	DPI        float64        `toml:"dpi,omitzero" validate:"gte=0"`
	Font       string         `toml:"font,omitempty"`
	Color      string         `toml:"color,omitempty" validate:"omitempty,len=6,hexadecimal"`
	PageWidth  float64        `toml:"page_width,omitzero" validate:"gte=0"`
	PageHeight float64        `toml:"page_height,omitzero" validate:"gte=0"`
	Photo      *PhotoConfig   `toml:"photo,omitempty"`
	Fields     []layout.Field `toml:"fields,omitempty" validate:"omitempty,dive"`
}

// PhotoConfig overrides individual photo frame values.
type PhotoConfig struct {
	Left   *float64         `toml:"left,omitempty" validate:"omitempty,gte=0"`
	Top    *float64         `toml:"top,omitempty" validate:"omitempty,gte=0"`
	Width  *float64         `toml:"width,omitempty" validate:"omitempty,gt=0"`
	Height *float64         `toml:"height,omitempty" validate:"omitempty,gt=0"`
	Mode   layout.PhotoMode `toml:"mode,omitempty" validate:"omitempty,oneof=fit center"`
}

func (c LayoutConfig) isZero() bool {
	return c.Preset == "" && c.Units == "" && c.DPI == 0 && c.Font == "" && c.Color == "" &&
		c.PageWidth == 0 && c.PageHeight == 0 && c.Photo == nil && c.Fields == nil
}

// Resolve applies the overrides to the selected preset.
func (c LayoutConfig) Resolve() (layout.Layout, error) {
	l, err := layout.Preset(c.Preset)
	if err != nil {
		return layout.Layout{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout")
	}
	if c.Units != "" {
		l.Units = c.Units
	}
	if c.DPI > 0 {
		l.DPI = c.DPI
	}
	if c.Font != "" {
		l.Font = c.Font
	}
	if c.Color != "" {
		l.Color = c.Color
	}
	if c.PageWidth > 0 {
		l.PageWidth = c.PageWidth
	}
	if c.PageHeight > 0 {
		l.PageHeight = c.PageHeight
	}
	if p := c.Photo; p != nil {
		setFloat(&l.Photo.Left, p.Left)
		setFloat(&l.Photo.Top, p.Top)
		setFloat(&l.Photo.Width, p.Width)
		setFloat(&l.Photo.Height, p.Height)
		if p.Mode != "" {
			l.Photo.Mode = p.Mode
		}
	}
	if c.Fields != nil {
		l.Fields = append([]layout.Field(nil), c.Fields...)
		for i := range l.Fields {
			if l.Fields[i].Align == "" {
				l.Fields[i].Align = layout.AlignLeft
			}
		}
	}
	return l, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
