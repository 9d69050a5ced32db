// Package boardimage draws the quest board of a running game as a PNG.
package boardimage

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/orhalimi/avalon_server/game"
)

const (
	Width  = 560
	Height = 200

	tokenRadius  = 40
	tokenSpacing = 108
	tokenY       = 70
	rejectRadius = 12
	rejectY      = 160
	rejectStep   = 40
	pipRadius    = 4
)

var (
	background = color.RGBA{R: 0x2b, G: 0x2d, B: 0x31, A: 0xff}
	success    = color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	failure    = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	pending    = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	pip        = color.RGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}
	twoFails   = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	emptySlot  = color.RGBA{R: 0x4b, G: 0x55, B: 0x63, A: 0xff}
)

// Render draws five quest tokens and the reject track. outcomes holds one
// entry per finished quest, true for a success.
func Render(outcomes []bool, rejects, players int) ([]byte, error) {
	if players < game.MinPlayers || players > game.MaxPlayers {
		return nil, fmt.Errorf("boardimage: no board for %d players", players)
	}
	if len(outcomes) > game.NumOfRounds {
		return nil, fmt.Errorf("boardimage: %d quest results", len(outcomes))
	}
	if rejects < 0 || rejects > game.MaxRejects {
		return nil, fmt.Errorf("boardimage: %d rejects", rejects)
	}

	dc := gg.NewContext(Width, Height)
	dc.SetColor(background)
	dc.Clear()

	left := (Width - tokenSpacing*(game.NumOfRounds-1)) / 2
	for i, round := range game.Rounds(players) {
		x := left + i*tokenSpacing
		if round.Fails > 1 {
			fillCircle(dc, x, tokenY, tokenRadius+4, twoFails)
		}
		switch {
		case i < len(outcomes) && outcomes[i]:
			fillCircle(dc, x, tokenY, tokenRadius, success)
		case i < len(outcomes):
			fillCircle(dc, x, tokenY, tokenRadius, failure)
		default:
			fillCircle(dc, x, tokenY, tokenRadius, pending)
			drawPips(dc, x, tokenY, round.Players)
		}
	}

	left = (Width - rejectStep*(game.MaxRejects-1)) / 2
	for i := 0; i < game.MaxRejects; i++ {
		c := emptySlot
		if i < rejects {
			c = failure
		}
		fillCircle(dc, left+i*rejectStep, rejectY, rejectRadius, c)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("boardimage: encoding: %w", err)
	}
	return buf.Bytes(), nil
}

// drawPips lays n dots in up to two rows centered on (cx, cy).
func drawPips(dc *gg.Context, cx, cy, n int) {
	perRow := n
	rows := 1
	if n > 3 {
		perRow = (n + 1) / 2
		rows = 2
	}
	step := pipRadius * 4
	drawn := 0
	for r := 0; r < rows; r++ {
		count := perRow
		if n-drawn < count {
			count = n - drawn
		}
		y := cy - (rows-1)*step/2 + r*step
		x0 := cx - (count-1)*step/2
		for i := 0; i < count; i++ {
			fillCircle(dc, x0+i*step, y, pipRadius, pip)
		}
		drawn += count
	}
}

// fillCircle fills a circle centered on pixel (cx, cy).
func fillCircle(dc *gg.Context, cx, cy, radius int, c color.Color) {
	dc.DrawCircle(float64(cx)+0.5, float64(cy)+0.5, float64(radius))
	dc.SetColor(c)
	dc.Fill()
}
