package volcano

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/volcano-flap/internal/core"
)

// Visual characters for rendering
const (
	MagmaChar  = '▓'
	LipChar    = '═'
	LavaChar   = '≈'
	CrustChar  = '▒'
	HeartFull  = '♥'
	HeartEmpty = '♡'
)

// birdSprite is Charizard facing right, drawn at 8x4 cells and resampled
// when the configured bird size maps to a different cell count.
var birdSprite = [...]string{
	" ▲    ▲ ",
	"◀██████◉",
	" ██████▶",
	"  ╯  ╰  ",
}

// birdColors colors each sprite row.
var birdColors = [...]core.Color{
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorOrange,
	core.ColorYellow,
}

// line is one row of an overlay card.
type line struct {
	text  string
	color core.Color
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.sim == nil || g.err != nil {
		g.drawTooSmall(dst)
		return
	}

	snap := g.sim.Snapshot()
	for _, p := range snap.Pipes {
		g.drawPipe(dst, snap, p)
	}
	g.drawFloor(dst)
	g.drawBird(dst, snap)
	g.drawHUD(dst, snap)

	switch {
	case snap.Status == StatusIntro:
		g.drawIntro(dst)
	case snap.Status == StatusGameOver:
		g.drawGameOver(dst, snap)
	case g.paused:
		drawCard(dst, []line{
			{"PAUSA", core.ColorBrightYellow},
			{"", core.ColorDefault},
			{"P para continuar", core.ColorGray},
		})
	}
}

func (g *Game) col(x float64) int {
	return int(math.Floor(x / g.cfg.Render.CellWidth))
}

func (g *Game) row(y float64) int {
	return hudRows + int(math.Floor(y/g.cfg.Render.CellHeight))
}

// lastPlayRow is the bottom row of the playfield, just above the lava.
func lastPlayRow(dst *core.Screen) int {
	return dst.Height() - floorRows - 1
}

// drawPipe renders both segments of a column with a bright lip at the gap.
func (g *Game) drawPipe(dst *core.Screen, snap Snapshot, p Pipe) {
	left := g.col(p.X)
	right := int(math.Ceil((p.X+snap.PipeWidth)/g.cfg.Render.CellWidth)) - 1
	width := right - left + 1
	if width <= 0 {
		return
	}

	topEnd := g.row(p.GapTop) - 1
	bottomStart := hudRows + int(math.Ceil((p.GapTop+snap.GapSize)/g.cfg.Render.CellHeight))
	last := lastPlayRow(dst)

	if topEnd >= hudRows {
		dst.DrawRect(core.NewRect(left, hudRows, width, topEnd-hudRows+1), MagmaChar, core.ColorMagma)
		dst.DrawHLine(left, topEnd, width, LipChar, core.ColorOrange)
	}
	if bottomStart <= last {
		dst.DrawRect(core.NewRect(left, bottomStart, width, last-bottomStart+1), MagmaChar, core.ColorMagma)
		dst.DrawHLine(left, bottomStart, width, LipChar, core.ColorOrange)
	}
}

// drawFloor renders the lava the bird rests on.
func (g *Game) drawFloor(dst *core.Screen) {
	y := dst.Height() - floorRows
	for x := 0; x < dst.Width(); x++ {
		if x%3 == 0 {
			dst.SetColored(x, y, CrustChar, core.ColorRed)
		} else {
			dst.SetColored(x, y, LavaChar, core.ColorOrange)
		}
	}
}

// drawBird renders the sprite resampled to the bird's cell footprint.
// A hit turns the sprite red for the flash duration.
func (g *Game) drawBird(dst *core.Screen, snap Snapshot) {
	x0 := g.col(snap.BirdX)
	y0 := g.row(snap.Bird.Y)
	cols := max(int(math.Round(snap.BirdSize/g.cfg.Render.CellWidth)), 1)
	rows := max(int(math.Round(snap.BirdSize/g.cfg.Render.CellHeight)), 1)

	for dy := 0; dy < rows; dy++ {
		sy := dy * len(birdSprite) / rows
		sprite := []rune(birdSprite[sy])
		color := birdColors[sy]
		if snap.Bird.IsHit {
			color = core.ColorBrightRed
		}
		for dx := 0; dx < cols; dx++ {
			r := sprite[dx*len(sprite)/cols]
			if r == ' ' {
				continue
			}
			dst.SetColored(x0+dx, y0+dy, r, color)
		}
	}
}

// drawHUD renders the lives on the left and the score on the right.
func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	var hearts strings.Builder
	for i := range snap.MaxLives {
		if i > 0 {
			hearts.WriteRune(' ')
		}
		if i < snap.Lives {
			hearts.WriteRune(HeartFull)
		} else {
			hearts.WriteRune(HeartEmpty)
		}
	}
	dst.DrawTextColored(1, 0, hearts.String(), core.ColorBrightRed)

	if g.difficulty() {
		level := fmt.Sprintf("Nivel %.0f%%", g.sim.difficulty.Level(snap.Score, snap.Tick)*100)
		dst.DrawTextCentered(0, level, core.ColorGray)
	}

	score := fmt.Sprintf("★ %d", snap.Score)
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(score)-1, 0, score, core.ColorBrightYellow)
}

func (g *Game) difficulty() bool {
	return g.sim != nil && g.sim.difficulty.IsEnabled()
}

func (g *Game) drawIntro(dst *core.Screen) {
	drawCard(dst, []line{
		{"¡Ayuda a Charizard!", core.ColorBrightYellow},
		{"", core.ColorDefault},
		{"Charizard está atrapado en un volcán infinito.", core.ColorWhite},
		{"ESPACIO para impulsarte hacia arriba", core.ColorWhite},
		{"Esquiva las columnas de magma", core.ColorWhite},
		{fmt.Sprintf("¡Tienes %d vidas!", g.cfg.Session.MaxLives), core.ColorBrightRed},
		{fmt.Sprintf("Si chocas %d veces, pierdes.", g.cfg.Session.MaxLives), core.ColorGray},
		{"", core.ColorDefault},
		{"[ ¡A VOLAR! ]", core.ColorOrange},
	})
}

func (g *Game) drawGameOver(dst *core.Screen, snap Snapshot) {
	ending := EndingFor(snap.Score, g.cfg.Endings)
	lines := []line{
		{fmt.Sprintf("%d Puntos", snap.Score), core.ColorBrightYellow},
		{"", core.ColorDefault},
		{ending.Title, core.ColorOrange},
	}
	if ending.Subtitle != "" {
		lines = append(lines, line{"\"" + ending.Subtitle + "\"", core.ColorWhite})
	}
	lines = append(lines,
		line{"", core.ColorDefault},
		line{"¡Se te acabó la vida, manito!", core.ColorBrightRed},
		line{"", core.ColorDefault},
		line{"[ JUGAR DE NUEVO ]", core.ColorOrange},
	)
	drawCard(dst, lines)
}

// drawTooSmall explains how many rows the volcano needs.
func (g *Game) drawTooSmall(dst *core.Screen) {
	need := int(math.Floor(g.cfg.MinPlayfieldHeight()/g.cfg.Render.CellHeight)) + 1 + hudRows + floorRows
	msg := fmt.Sprintf("Terminal too small: need %d rows", need)
	dst.DrawTextCentered(dst.Height()/2, msg, core.ColorBrightRed)
}

// drawCard draws lines in a bordered box centered on the screen.
func drawCard(dst *core.Screen, lines []line) {
	inner := 0
	for _, l := range lines {
		inner = max(inner, utf8.RuneCountInString(l.text))
	}
	boxW := min(inner+4, dst.Width())
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorOrange)
	for i, l := range lines {
		x := box.X + (boxW-utf8.RuneCountInString(l.text))/2
		dst.DrawTextColored(x, box.Y+1+i, l.text, l.color)
	}
}
