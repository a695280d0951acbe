package globeengine

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func (e *Engine) drawHUD(screen *ebiten.Image) {
	if e.fontSource == nil || e.monoSource == nil {
		return
	}
	margin, fontSize, titleSize := 40.0, 18.0, 48.0
	if e.Width > 2000 {
		margin, fontSize, titleSize = 80.0, 36.0, 96.0
	}

	// Active decade, big and monospaced.
	label := e.view.ActiveDecade()
	if label == "" {
		label = "----"
	}
	titleFace := &text.GoTextFace{Source: e.monoSource, Size: titleSize}
	top := &text.DrawOptions{}
	top.GeoM.Translate(margin, margin)
	top.ColorScale.Scale(1, 1, 1, 0.9)
	text.Draw(screen, label+"s", titleFace, top)

	e.drawLegend(screen, margin, fontSize)
	e.drawStatsBox(screen, margin, fontSize)
}

// drawLegend shows what warm and cool spikes look like. Swatch colors come
// from the anomaly mapper itself so the legend can never drift from the
// markers.
func (e *Engine) drawLegend(screen *ebiten.Image, margin, fontSize float64) {
	items := []struct {
		Label string
		Delta float64
	}{
		{"Warming anomaly", 1.0},
		{"Cooling anomaly", -1.0},
	}

	face := &text.GoTextFace{Source: e.fontSource, Size: fontSize}
	spacing, swatch := fontSize*2, fontSize
	ly := float64(e.Height) - margin - float64(len(items))*spacing

	for i, it := range items {
		h, s, l, _ := MapAnomaly(it.Delta)
		r, g, b := HSLToRGB(h, s, l)
		c := color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}

		ty := ly + float64(i)*spacing
		vector.DrawFilledRect(screen, float32(margin), float32(ty), float32(swatch), float32(swatch), c, false)

		top := &text.DrawOptions{}
		top.GeoM.Translate(margin+swatch+12, ty)
		top.ColorScale.Scale(1, 1, 1, 0.8)
		text.Draw(screen, it.Label, face, top)
	}
}

// drawStatsBox shows the precomputed statistics for the active decade, when
// the background computation has delivered them.
func (e *Engine) drawStatsBox(screen *ebiten.Image, margin, fontSize float64) {
	label := e.view.ActiveDecade()
	if label == "" {
		return
	}
	st, ok := e.statsFor(label)
	if !ok {
		return
	}

	lines := []string{
		fmt.Sprintf("samples   %d", st.Count),
		fmt.Sprintf("rendered  %d", st.NonZeroCount),
		fmt.Sprintf("min       %+.3f", st.MinDelta),
		fmt.Sprintf("max       %+.3f", st.MaxDelta),
		fmt.Sprintf("avg       %+.3f", st.AvgDelta),
	}

	face := &text.GoTextFace{Source: e.monoSource, Size: fontSize * 0.85}
	lineH := fontSize * 1.3
	boxW := fontSize * 11
	boxH := lineH*float64(len(lines)) + 20

	bx := float64(e.Width) - margin - boxW
	by := float64(e.Height) - margin - boxH
	vector.DrawFilledRect(screen, float32(bx-10), float32(by-10), float32(boxW+20), float32(boxH+10), color.RGBA{0, 0, 0, 100}, false)
	vector.StrokeRect(screen, float32(bx-10), float32(by-10), float32(boxW+20), float32(boxH+10), 1, colorOutline, false)

	for i, line := range lines {
		top := &text.DrawOptions{}
		top.GeoM.Translate(bx, by+float64(i)*lineH)
		top.ColorScale.Scale(1, 1, 1, 0.7)
		text.Draw(screen, line, face, top)
	}
}
