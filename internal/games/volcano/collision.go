package volcano

import (
	"github.com/vovakirdan/volcano-flap/internal/config"
	"github.com/vovakirdan/volcano-flap/internal/core"
)

// Hitbox returns the bird's collision box: the sprite square at birdX, y
// shrunk by the configured padding on the right and inset top and bottom.
func Hitbox(p config.Player, birdX, y float64) core.Box {
	return core.Box{
		Left:   birdX,
		Right:  birdX + p.Size - p.HitboxPadding,
		Top:    y + p.HitboxInset,
		Bottom: y + p.Size - p.HitboxInset,
	}
}

// Collides reports whether a hitbox overlaps either segment of a column.
// Both segments share the column's horizontal span, so a hit needs
// horizontal overlap and the box poking out of the gap above or below.
func Collides(hb core.Box, p Pipe, o config.Obstacles) bool {
	span := core.Box{Left: p.X, Right: p.X + o.Width}
	if !hb.OverlapsX(span) {
		return false
	}
	return hb.Top < p.GapTop || hb.Bottom > p.GapTop+o.GapSize
}
