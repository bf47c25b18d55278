// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segimage renders a bank of seven-segment digits to an image, and
// serves PNG snapshots over HTTP. Handy to eyeball what the physical panel
// is showing from the comfort of a browser.
package segimage

import (
	"image"
	"image/color"
	"image/png"
	"net/http"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const numSegments = 8

// Opts represents the rendering options.
type Opts struct {
	// Digits is the number of digit cells to draw.
	Digits int
	// CellWidth and CellHeight are the pixel size of one digit cell.
	// Default 64x96.
	CellWidth  int
	CellHeight int
	// Lit, Dark and Background override the default colors (red LED on a
	// near-black board).
	Lit        color.Color
	Dark       color.Color
	Background color.Color
	// LabelFace, when set, draws the digit index under each cell.
	// basicfont.Face7x13 is a good choice.
	LabelFace font.Face

	_ struct{}
}

// Renderer draws digit banks. Safe for concurrent use.
type Renderer struct {
	digits     int
	cellW      int
	cellH      int
	lit        color.Color
	dark       color.Color
	background color.Color
	face       font.Face
}

// NewRenderer returns a Renderer for opts.Digits digit cells.
func NewRenderer(opts *Opts) *Renderer {
	r := &Renderer{
		digits:     opts.Digits,
		cellW:      opts.CellWidth,
		cellH:      opts.CellHeight,
		lit:        opts.Lit,
		dark:       opts.Dark,
		background: opts.Background,
		face:       opts.LabelFace,
	}
	if r.cellW == 0 {
		r.cellW = 64
	}
	if r.cellH == 0 {
		r.cellH = 96
	}
	if r.lit == nil {
		r.lit = color.NRGBA{0xFF, 0x20, 0x10, 0xFF}
	}
	if r.dark == nil {
		r.dark = color.NRGBA{0x28, 0x0C, 0x08, 0xFF}
	}
	if r.background == nil {
		r.background = color.NRGBA{0x10, 0x10, 0x10, 0xFF}
	}
	return r
}

// Bounds returns the size of rendered images.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.digits*r.cellW, r.cellH)
}

// segment endpoints in a unit cell, A..G. The decimal point is a disc at
// the bottom right corner.
var segmentLines = [7][4]float64{
	{0.15, 0.10, 0.70, 0.10}, // A
	{0.70, 0.10, 0.70, 0.45}, // B
	{0.70, 0.45, 0.70, 0.80}, // C
	{0.15, 0.80, 0.70, 0.80}, // D
	{0.15, 0.45, 0.15, 0.80}, // E
	{0.15, 0.10, 0.15, 0.45}, // F
	{0.15, 0.45, 0.70, 0.45}, // G
}

// Render draws one pattern byte per digit cell, bit 0..6 being segments
// A..G and bit 7 the decimal point, 1 = lit. Missing trailing patterns
// render dark; extra ones are ignored.
func (r *Renderer) Render(patterns []byte) image.Image {
	dc := gg.NewContext(r.digits*r.cellW, r.cellH)
	dc.SetColor(r.background)
	dc.Clear()

	w := float64(r.cellW)
	h := float64(r.cellH)
	dc.SetLineWidth(w / 12)
	dc.SetLineCapRound()

	for digit := 0; digit < r.digits; digit++ {
		var pattern byte
		if digit < len(patterns) {
			pattern = patterns[digit]
		}
		x0 := float64(digit * r.cellW)
		for seg, l := range segmentLines {
			if pattern&(1<<seg) != 0 {
				dc.SetColor(r.lit)
			} else {
				dc.SetColor(r.dark)
			}
			dc.DrawLine(x0+l[0]*w, l[1]*h, x0+l[2]*w, l[3]*h)
			dc.Stroke()
		}
		if pattern&0x80 != 0 {
			dc.SetColor(r.lit)
		} else {
			dc.SetColor(r.dark)
		}
		dc.DrawCircle(x0+0.85*w, 0.80*h, w/16)
		dc.Fill()

		if r.face != nil {
			dc.SetFontFace(r.face)
			dc.SetColor(color.NRGBA{0x80, 0x80, 0x80, 0xFF})
			dc.DrawStringAnchored(digitLabel(digit), x0+0.45*w, 0.92*h, 0.5, 0.5)
		}
	}
	return dc.Image()
}

func digitLabel(d int) string {
	return string(rune('0' + d))
}

// Handler serves a PNG snapshot of the bank, jrockway-clock style: mount
// it next to /metrics and point a browser at it.
type Handler struct {
	Renderer *Renderer
	// Snapshot returns the current patterns, one byte per digit. Give it
	// (*megaplexer.Store).Snapshot.
	Snapshot func() []byte

	mu sync.Mutex
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.mu.Lock()
	img := h.Renderer.Render(h.Snapshot())
	h.mu.Unlock()
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DefaultLabelFace is a small bitmap face suitable for Opts.LabelFace.
var DefaultLabelFace font.Face = basicfont.Face7x13

var _ http.Handler = &Handler{}
