// Package render draws the calculator face to PNG.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/averycrespi/calc-mcp/internal/keypad"
	"github.com/averycrespi/calc-mcp/pkg/types"
	"github.com/cespare/xxhash/v2"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const maxCacheEntries = 128

const (
	colorBackground = "#f1f3f4"
	colorDisplay    = "#ffffff"
	colorText       = "#202124"
	colorMuted      = "#5f6368"
	colorError      = "#d93025"
	colorDigit      = "#e8eaed"
	colorOperator   = "#d2e3fc"
	colorAction     = "#fbbc04"
	colorBorder     = "#dadce0"
)

// Renderer draws display snapshots and caches the encoded images
type Renderer struct {
	width    int
	height   int
	fontSize float64
	font     *truetype.Font

	cache map[uint64][]byte
	order []uint64
	mu    sync.Mutex
}

// NewRenderer creates a renderer for the given face size
func NewRenderer(cfg types.RenderConfig) (*Renderer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.FontSize <= 0 {
		return nil, fmt.Errorf("invalid render size %dx%d at font size %g", cfg.Width, cfg.Height, cfg.FontSize)
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	return &Renderer{
		width:    cfg.Width,
		height:   cfg.Height,
		fontSize: cfg.FontSize,
		font:     f,
		cache:    make(map[uint64][]byte),
	}, nil
}

// PNG returns the calculator face for d encoded as PNG
func (r *Renderer) PNG(d keypad.Display) ([]byte, error) {
	key := r.cacheKey(d)

	r.mu.Lock()
	defer r.mu.Unlock()

	if data, ok := r.cache[key]; ok {
		slog.Debug("Render cache hit", "key", key)
		return data, nil
	}

	dc := r.draw(d)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	data := buf.Bytes()

	r.cache[key] = data
	r.order = append(r.order, key)
	if len(r.order) > maxCacheEntries {
		delete(r.cache, r.order[0])
		r.order = r.order[1:]
	}

	return data, nil
}

func (r *Renderer) cacheKey(d keypad.Display) uint64 {
	h := xxhash.New()
	for _, s := range []string{
		d.Expression, d.OperandText, d.Pending, d.Error,
		strconv.Itoa(r.width), strconv.Itoa(r.height), strconv.FormatFloat(r.fontSize, 'g', -1, 64),
	} {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

func (r *Renderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: size})
}

func (r *Renderer) draw(d keypad.Display) *gg.Context {
	w, h := float64(r.width), float64(r.height)
	pad := w * 0.02

	dc := gg.NewContext(r.width, r.height)
	dc.SetHexColor(colorBackground)
	dc.Clear()

	// expression label
	labelH := h * 0.1
	labelFace := r.face(r.fontSize * 0.66)
	defer labelFace.Close()
	dc.SetFontFace(labelFace)
	dc.SetHexColor(colorMuted)
	dc.DrawStringAnchored(fitText(dc, d.Expression, w-2*pad), w-pad, pad+labelH/2, 1, 0.5)

	// result field
	fieldY := pad + labelH
	fieldH := h * 0.14
	dc.SetHexColor(colorDisplay)
	dc.DrawRoundedRectangle(pad, fieldY, w-2*pad, fieldH, 6)
	dc.Fill()
	dc.SetHexColor(colorBorder)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(pad, fieldY, w-2*pad, fieldH, 6)
	dc.Stroke()

	fieldFace := r.face(r.fontSize)
	defer fieldFace.Close()
	dc.SetFontFace(fieldFace)
	if d.Error != "" {
		dc.SetHexColor(colorError)
	} else {
		dc.SetHexColor(colorText)
	}
	dc.DrawStringAnchored(fitText(dc, d.OperandText, w-4*pad), w-2*pad, fieldY+fieldH/2, 1, 0.5)

	// keypad
	gridY := fieldY + fieldH + pad
	rows := len(keypad.Layout)
	cols := len(keypad.Layout[0])
	cellW := (w - pad) / float64(cols)
	cellH := (h - gridY) / float64(rows)

	keyFace := r.face(r.fontSize * 0.8)
	defer keyFace.Close()
	dc.SetFontFace(keyFace)

	for row, labels := range keypad.Layout {
		for col, label := range labels {
			x := pad + float64(col)*cellW
			y := gridY + float64(row)*cellH
			dc.SetHexColor(keyColor(label, d.Pending))
			dc.DrawRoundedRectangle(x, y, cellW-pad, cellH-pad, 8)
			dc.Fill()
			dc.SetHexColor(colorText)
			dc.DrawStringAnchored(label, x+(cellW-pad)/2, y+(cellH-pad)/2, 0.5, 0.5)
		}
	}

	return dc
}

func keyColor(label, pending string) string {
	key, err := keypad.ParseKey(label)
	if err != nil {
		return colorDigit
	}
	switch key.Kind {
	case keypad.KeyOperator, keypad.KeyUnary:
		if key.Label == pending {
			return colorAction
		}
		return colorOperator
	case keypad.KeyEvaluate, keypad.KeyClear:
		return colorAction
	default:
		return colorDigit
	}
}

// fitText drops leading characters until s fits in width
func fitText(dc *gg.Context, s string, width float64) string {
	runes := []rune(s)
	for len(runes) > 1 {
		if tw, _ := dc.MeasureString(string(runes)); tw <= width {
			break
		}
		runes = runes[1:]
		if len(runes) > 1 {
			runes[0] = '…'
		}
	}
	return string(runes)
}
