package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/tribixbite/craftmatic-sub003/schem"
)

// TopDownImage rasterizes a bird's-eye view of g: each (x,z) column shows its
// highest occupied cell, shaded by height so roofs read lighter than floors.
// Empty columns stay transparent. Each cell covers scale x scale pixels.
func TopDownImage(g *schem.Grid, scale int) (*image.NRGBA, error) {
	if scale < 1 {
		return nil, fmt.Errorf("render: scale %d, must be >= 1", scale)
	}
	width, height, length := g.Dimensions()
	cells := g.To3D()
	img := image.NewNRGBA(image.Rect(0, 0, width*scale, length*scale))

	for z := 0; z < length; z++ {
		for x := 0; x < width; x++ {
			top := -1
			for y := height - 1; y >= 0; y-- {
				if !cells[y][z][x].IsAir() {
					top = y
					break
				}
			}
			if top < 0 {
				continue
			}
			rgba := ColorOf(cells[top][z][x])
			// Scale brightness from 55% at the floor to 100% at the top layer.
			shade := 0.55 + 0.45*float64(top)/float64(height-1)
			if height == 1 {
				shade = 1
			}
			px := color.NRGBA{
				R: uint8(float64(rgba[0]) * shade * 255),
				G: uint8(float64(rgba[1]) * shade * 255),
				B: uint8(float64(rgba[2]) * shade * 255),
				A: uint8(rgba[3] * 255),
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetNRGBA(x*scale+dx, z*scale+dy, px)
				}
			}
		}
	}
	return img, nil
}

// WritePNG renders the top-down view and encodes it as PNG.
func WritePNG(w io.Writer, g *schem.Grid, scale int) error {
	img, err := TopDownImage(g, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
