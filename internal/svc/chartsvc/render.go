package chartsvc

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mkrupp/movieshelf/internal/analysis"
	"github.com/mkrupp/movieshelf/internal/domain"
)

// Logical canvas geometry. The canvas is rendered at this size and
// scaled to the configured output dimensions afterwards.
const (
	canvasWidth  = 640
	rowHeight    = 24
	topMargin    = 36
	bottomMargin = 32
	leftMargin   = 180
	rightMargin  = 24
	barHeight    = 14
	pointSize    = 5
	maxLabelLen  = 22
)

//nolint:gochecknoglobals
var (
	colorBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorBar        = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	colorPoint      = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	colorAxis       = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	colorGrid       = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	colorText       = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

// renderPlot draws one row per entry: a horizontal bar for rating-like
// attributes, or a point on a shared year axis for the release year.
// Entries are expected in canonical (title-ascending) order.
func renderPlot(entries []analysis.Entry, attribute string) *image.RGBA {
	height := topMargin + len(entries)*rowHeight + bottomMargin
	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	minVal, maxVal := valueRange(entries, attribute)

	drawFrame(img, attribute, minVal, maxVal)

	for i, entry := range entries {
		val, _ := entry.Movie.NumericAttribute(attribute)
		rowTop := topMargin + i*rowHeight

		drawLabelRight(img, leftMargin-8, rowTop+rowHeight/2+4, truncate(entry.Title))

		if attribute == domain.AttrYear {
			drawPoint(img, scaleX(val, minVal, maxVal), rowTop+rowHeight/2)
		} else {
			drawBar(img, rowTop, val, minVal, maxVal)
		}
	}

	return img
}

// valueRange determines the x axis bounds. Bar charts always start at zero
// so bar lengths stay proportional; the year scatter spans the observed
// range with a one year pad on either side.
func valueRange(entries []analysis.Entry, attribute string) (minVal, maxVal float64) {
	first := true

	for _, entry := range entries {
		val, ok := entry.Movie.NumericAttribute(attribute)
		if !ok {
			continue
		}

		if first || val < minVal {
			minVal = val
		}

		if first || val > maxVal {
			maxVal = val
		}

		first = false
	}

	if attribute == domain.AttrYear {
		minVal--
		maxVal++
	} else {
		minVal = 0
		if maxVal <= 0 {
			maxVal = 1
		}
	}

	return minVal, maxVal
}

func scaleX(val, minVal, maxVal float64) int {
	span := maxVal - minVal
	if span == 0 {
		span = 1
	}

	plotWidth := canvasWidth - leftMargin - rightMargin

	return leftMargin + int((val-minVal)/span*float64(plotWidth))
}

func drawFrame(img *image.RGBA, attribute string, minVal, maxVal float64) {
	bounds := img.Bounds()

	// vertical axis
	fillRect(img, image.Rect(leftMargin, topMargin, leftMargin+1, bounds.Max.Y-bottomMargin), colorAxis)
	// horizontal axis
	fillRect(img, image.Rect(leftMargin, bounds.Max.Y-bottomMargin, canvasWidth-rightMargin, bounds.Max.Y-bottomMargin+1), colorAxis)

	drawLabel(img, leftMargin, topMargin-14, attribute, colorText)

	const ticks = 4

	for i := 0; i <= ticks; i++ {
		val := minVal + (maxVal-minVal)*float64(i)/ticks
		x := scaleX(val, minVal, maxVal)

		if i > 0 {
			fillRect(img, image.Rect(x, topMargin, x+1, bounds.Max.Y-bottomMargin), colorGrid)
		}

		drawLabelCentered(img, x, bounds.Max.Y-bottomMargin+16, formatTick(attribute, val))
	}
}

func drawBar(img *image.RGBA, rowTop int, val, minVal, maxVal float64) {
	y := rowTop + (rowHeight-barHeight)/2
	right := scaleX(val, minVal, maxVal)

	if right > leftMargin+1 {
		fillRect(img, image.Rect(leftMargin+1, y, right, y+barHeight), colorBar)
	}

	drawLabel(img, right+6, y+barHeight-2, fmt.Sprintf("%.1f", val), colorText)
}

func drawPoint(img *image.RGBA, x, y int) {
	half := pointSize / 2
	fillRect(img, image.Rect(x-half, y-half, x+half+1, y+half+1), colorPoint)
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Src)
}

func drawLabel(img *image.RGBA, x, y int, text string, col color.Color) {
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

func drawLabelRight(img *image.RGBA, right, y int, text string) {
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorText),
		Face: basicfont.Face7x13,
	}
	width := drawer.MeasureString(text).Ceil()
	drawer.Dot = fixed.P(right-width, y)
	drawer.DrawString(text)
}

func drawLabelCentered(img *image.RGBA, center, y int, text string) {
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorText),
		Face: basicfont.Face7x13,
	}
	width := drawer.MeasureString(text).Ceil()
	drawer.Dot = fixed.P(center-width/2, y)
	drawer.DrawString(text)
}

func formatTick(attribute string, val float64) string {
	if attribute == domain.AttrYear {
		return fmt.Sprintf("%.0f", val)
	}

	return fmt.Sprintf("%.1f", val)
}

func truncate(title string) string {
	if len(title) <= maxLabelLen {
		return title
	}

	return title[:maxLabelLen-1] + "…"
}
