package skate

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/nightskate/internal/core"
)

// Glyphs for the top-down view.
const (
	RoadEdgeChar  = '│'
	LaneDashChar  = '╎'
	BarrierChar   = '▄'
	FenceChar     = '╫'
	CarChar       = '█'
	HeadlightChar = '▀'
	CrackChar     = '~'
	BuildingChar  = '▒'
	LampChar      = '¦'
	LampHeadChar  = '*'
	SkaterChar    = '▲'
	AirborneChar  = '△'
	BrakingChar   = '■'
	ShadowChar    = '·'
	CrashChar     = '✕'
)

const (
	gaugeWidth     = 10
	zPerRow        = 2.0 // World units per screen row
	maxColsPerUnit = 3.0
	laneMarkX      = 3.0
)

// view maps world coordinates to screen cells. The skater sits near the
// bottom; rows above it look ahead (toward -Z).
type view struct {
	cx, skaterRow int
	top, bottom   int
	scale         float64
	skaterZ       float64
}

func newView(dst *core.Screen, w *World) view {
	cfg := w.Config()
	reach := cfg.Track.RoadWidth/2 + cfg.Track.DecorationOffset + 4
	scale := math.Min(maxColsPerUnit, float64(dst.Width()-2)/(2*reach))
	return view{
		cx:        dst.Width() / 2,
		skaterRow: dst.Height() - 3,
		top:       1,
		bottom:    dst.Height() - 1,
		scale:     max(scale, 0.5),
		skaterZ:   w.Skater().Position.Z(),
	}
}

func (v view) col(x float64) int {
	return v.cx + int(math.Round(x*v.scale))
}

func (v view) rowZ(y int) float64 {
	return v.skaterZ - float64(v.skaterRow-y)*zPerRow
}

func (v view) row(z float64) int {
	return v.skaterRow - int(math.Round((v.skaterZ-z)/zPerRow))
}

func (v view) visible(y int) bool {
	return y >= v.top && y <= v.bottom
}

// rowsCovering calls fn for every visible row whose Z falls inside [z0, z1].
func (v view) rowsCovering(z0, z1 float64, fn func(y int)) {
	for y := v.top; y <= v.bottom; y++ {
		if z := v.rowZ(y); z >= z0 && z <= z1 {
			fn(y)
		}
	}
}

func renderWorld(dst *core.Screen, w *World) {
	v := newView(dst, w)
	cfg := w.Config()
	ents := w.Entities()

	for _, d := range ents.Decorations {
		drawDecoration(dst, v, d, cfg.Track.SegmentLength)
	}

	front, rear := w.Track().Span()
	half := cfg.Track.RoadWidth / 2
	for y := v.top; y <= v.bottom; y++ {
		z := v.rowZ(y)
		if z < front || z >= rear {
			continue
		}
		dst.SetColored(v.col(-half), y, RoadEdgeChar, core.ColorGray)
		dst.SetColored(v.col(half), y, RoadEdgeChar, core.ColorGray)
		if int(math.Floor(z/zPerRow))%2 == 0 {
			dst.SetColored(v.col(-laneMarkX), y, LaneDashChar, core.ColorYellow)
			dst.SetColored(v.col(laneMarkX), y, LaneDashChar, core.ColorYellow)
		}
	}

	for _, c := range ents.Cracks {
		if y := v.row(c.Z); v.visible(y) {
			dst.SetColored(v.col(c.X), y, CrackChar, core.ColorGray)
		}
	}

	for _, b := range ents.Barriers {
		drawBarrier(dst, v, b)
	}

	reach := cfg.Collision.CarReach
	halfW := cfg.Collision.CarHalfWidth
	for _, o := range ents.Obstacles {
		drawCar(dst, v, o, reach, halfW)
	}

	drawSkater(dst, v, w)
	drawHUD(dst, w.Frame())
}

func drawDecoration(dst *core.Screen, v view, d Decoration, depth float64) {
	switch d.Prop {
	case Building:
		color := core.PaletteColor(d.Paint)
		x0, x1 := v.col(d.X-d.Width/2), v.col(d.X+d.Width/2)
		v.rowsCovering(d.Z-depth, d.Z+depth, func(y int) {
			for x := x0; x <= x1; x++ {
				dst.SetColored(x, y, BuildingChar, color)
			}
		})
	case Streetlamp:
		y := v.row(d.Z)
		if v.visible(y) {
			dst.SetColored(v.col(d.X), y, LampChar, core.ColorGray)
		}
		if v.visible(y - 1) {
			dst.SetColored(v.col(d.X), y-1, LampHeadChar, core.ColorBrightYellow)
		}
	}
}

func drawBarrier(dst *core.Screen, v view, b Barrier) {
	glyph, color := BarrierChar, core.ColorOrange
	if b.Fenced {
		glyph, color = FenceChar, core.ColorBrightRed
	}
	x0, x1 := v.col(-b.Width/2), v.col(b.Width/2)
	v.rowsCovering(b.ZStart, b.ZEnd, func(y int) {
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, glyph, color)
		}
	})
}

func drawCar(dst *core.Screen, v view, o Obstacle, reach, halfW float64) {
	color := core.PaletteColor(o.Paint)
	x0, x1 := v.col(o.X-halfW), v.col(o.X+halfW)
	nose := v.row(o.Z - reach)
	if o.Approaching {
		nose = v.row(o.Z + reach)
	}
	v.rowsCovering(o.Z-reach, o.Z+reach, func(y int) {
		glyph := CarChar
		if y == nose {
			glyph = HeadlightChar
		}
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, glyph, color)
		}
	})
}

func drawSkater(dst *core.Screen, v view, w *World) {
	st := w.Skater()
	x := v.col(st.Position.X())
	switch {
	case st.Phase == GameOver:
		dst.SetColored(x, v.skaterRow, CrashChar, core.ColorBrightRed)
	case st.Phase == Jumping:
		lift := int(math.Round(st.JumpHeight * 2))
		dst.SetColored(x, v.skaterRow, ShadowChar, core.ColorGray)
		dst.SetColored(x, v.skaterRow-lift, AirborneChar, core.ColorBrightCyan)
	case w.Pose().Braking:
		dst.SetColored(x, v.skaterRow, BrakingChar, core.ColorBrightMagenta)
	default:
		dst.SetColored(x, v.skaterRow, SkaterChar, core.ColorBrightCyan)
	}
}

func drawHUD(dst *core.Screen, f Frame) {
	filled := int(math.Round(core.ClampF(f.SpeedNorm, 0, 1) * gaugeWidth))
	gauge := strings.Repeat("=", filled) + strings.Repeat("-", gaugeWidth-filled)
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", f.Score), core.ColorBrightWhite)
	speed := fmt.Sprintf(" [%s] %2.0f km/h ", gauge, f.SpeedGauge)
	dst.DrawTextColored(dst.Width()-len([]rune(speed))-2, 0, speed, core.ColorBrightGreen)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	box := dst.Bounds().Centered(boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, title)
	dst.DrawTextCentered(box.Y+3, subtitle)
}
