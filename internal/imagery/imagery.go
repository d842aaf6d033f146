// Package imagery synthesizes the dashboard's satellite-style layers.
// Nothing here touches real satellite data; every image is generated
// from a seed so the demo works offline.
package imagery

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Layer types accepted by the generator
const (
	TypeTruecolor   = "truecolor"
	TypeVegetation  = "vegetation"
	TypeMoisture    = "moisture"
	TypeTemperature = "temperature"
)

const (
	gridCells  = 16
	cellPixels = 24
	rasterSide = 512
)

// palettes maps a layer type to its color ramp, low to high
var palettes = map[string][]color.NRGBA{
	TypeTruecolor: {
		{R: 0x4a, G: 0x6b, B: 0x3a, A: 0xff},
		{R: 0x6b, G: 0x8e, B: 0x23, A: 0xff},
		{R: 0x8f, G: 0xa8, B: 0x56, A: 0xff},
		{R: 0xc2, G: 0xb2, B: 0x80, A: 0xff},
		{R: 0x8b, G: 0x73, B: 0x55, A: 0xff},
	},
	TypeVegetation: {
		{R: 0xd7, G: 0x30, B: 0x27, A: 0xff},
		{R: 0xfc, G: 0x8d, B: 0x59, A: 0xff},
		{R: 0xfe, G: 0xe0, B: 0x8b, A: 0xff},
		{R: 0xa6, G: 0xd9, B: 0x6a, A: 0xff},
		{R: 0x1a, G: 0x98, B: 0x50, A: 0xff},
	},
	TypeMoisture: {
		{R: 0xf7, G: 0xfb, B: 0xff, A: 0xff},
		{R: 0xc6, G: 0xdb, B: 0xef, A: 0xff},
		{R: 0x6b, G: 0xae, B: 0xd6, A: 0xff},
		{R: 0x21, G: 0x71, B: 0xb5, A: 0xff},
		{R: 0x08, G: 0x30, B: 0x6b, A: 0xff},
	},
	TypeTemperature: {
		{R: 0x31, G: 0x36, B: 0x95, A: 0xff},
		{R: 0x74, G: 0xad, B: 0xd1, A: 0xff},
		{R: 0xfe, G: 0xe0, B: 0x90, A: 0xff},
		{R: 0xf4, G: 0x6d, B: 0x43, A: 0xff},
		{R: 0xa5, G: 0x00, B: 0x26, A: 0xff},
	},
}

// Generator produces synthetic layer images
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates an image generator
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{logger: logger}
}

// ValidType reports whether the layer type is recognized
func ValidType(imgType string) bool {
	_, ok := palettes[imgType]
	return ok
}

// SVG renders the layer as a vector grid. Deterministic for a given
// (type, seed) pair.
func (g *Generator) SVG(imgType string, seed int64) (string, error) {
	palette, ok := palettes[imgType]
	if !ok {
		return "", fmt.Errorf("unknown imagery type: %s", imgType)
	}

	rng := rand.New(rand.NewSource(seed))
	side := gridCells * cellPixels

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		side, side, side, side)
	b.WriteString("\n")

	for row := 0; row < gridCells; row++ {
		for col := 0; col < gridCells; col++ {
			c := cellColor(palette, rng, row, col)
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="#%02x%02x%02x"/>`,
				col*cellPixels, row*cellPixels, cellPixels, cellPixels, c.R, c.G, c.B)
			b.WriteString("\n")
		}
	}
	b.WriteString("</svg>\n")

	g.logger.Debug("svg layer generated", zap.String("type", imgType), zap.Int64("seed", seed))
	return b.String(), nil
}

// PNG renders the layer as a raster: the same grid drawn small, then
// blurred and upscaled so cell edges read as terrain gradients.
func (g *Generator) PNG(imgType string, seed int64) ([]byte, error) {
	palette, ok := palettes[imgType]
	if !ok {
		return nil, fmt.Errorf("unknown imagery type: %s", imgType)
	}

	rng := rand.New(rand.NewSource(seed))

	img := image.NewNRGBA(image.Rect(0, 0, gridCells, gridCells))
	for row := 0; row < gridCells; row++ {
		for col := 0; col < gridCells; col++ {
			img.SetNRGBA(col, row, cellColor(palette, rng, row, col))
		}
	}

	scaled := imaging.Resize(img, rasterSide, rasterSide, imaging.Lanczos)
	smoothed := imaging.Blur(scaled, 2.5)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, smoothed, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	g.logger.Debug("png layer generated", zap.String("type", imgType), zap.Int64("seed", seed))
	return buf.Bytes(), nil
}

// cellColor picks from the ramp with a mild row bias so the grid reads
// as a gradient rather than noise
func cellColor(palette []color.NRGBA, rng *rand.Rand, row, col int) color.NRGBA {
	bias := float64(row) / float64(gridCells)
	idx := int(bias*float64(len(palette)-1) + rng.Float64()*1.5)
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}
