package visualization

import (
	"image"
	"math"

	"fourierlab/internal/models"
)

// BasisImage renders the 2D cosine basis function of a selected spectrum
// cell: cos(2π(u·px + v·py) + phase) with u, v the cell's offset from the
// spectrum center divided by gridSize.
func BasisImage(p models.SelectedPoint, gridSize, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(gridSize / 2)
	u := (float64(p.X) - center) / float64(gridSize)
	v := (float64(p.Y) - center) / float64(gridSize)

	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			wave := math.Cos(2*math.Pi*(u*float64(px)+v*float64(py)) + p.Phase)
			c := uint8(math.Floor((wave + 1) / 2 * 255))

			i := img.PixOffset(px, py)
			img.Pix[i] = c
			img.Pix[i+1] = c
			img.Pix[i+2] = c
			img.Pix[i+3] = 255
		}
	}
	return img
}
