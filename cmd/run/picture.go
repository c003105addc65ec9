package main

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// halfBlock draws an image with one terminal cell per two vertical pixels:
// the upper pixel is the foreground of "▀", the lower one the background.
func halfBlock(img *image.RGBA, cols, rows int) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := pixel(img, b.Min.X+x, b.Min.Y+2*y)
			bottom := pixel(img, b.Min.X+x, b.Min.Y+2*y+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		if y < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func pixel(img *image.RGBA, x, y int) string {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return "#000000"
	}
	c := img.RGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
