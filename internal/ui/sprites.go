// Package ui implements the chess game UI using Ebitengine.
package ui

import (
	"image"
	"log"
	"strings"

	"github.com/hailam/mailboxchess/internal/board"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Piece outlines on a 45x45 canvas. {F} is the body color, {S} the outline.
var pieceShapes = map[board.PieceType]string{
	board.Pawn: `
<circle cx="22.5" cy="14" r="5" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<path d="M 18.5,19 L 26.5,19 L 29,31 L 16,31 Z" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<path d="M 11,39 C 11,33 15,31 22.5,31 C 30,31 34,33 34,39 Z" fill="{F}" stroke="{S}" stroke-width="1.5"/>`,

	board.Knight: `
<path d="M 22,10 C 32,11 37,18 36,39 L 15,39 C 15,30 25,31 22,22 C 19,25 16,26 13,28 C 10,30 8,28 9,26 C 10,22 13,20 15,17 C 16,14 17,12 22,10 Z" fill="{F}" stroke="{S}" stroke-width="1.5" stroke-linejoin="round"/>
<circle cx="15.5" cy="19.5" r="1.3" fill="{S}"/>
<rect x="12" y="36" width="25" height="4" fill="{F}" stroke="{S}" stroke-width="1.5"/>`,

	board.Bishop: `
<circle cx="22.5" cy="9" r="2.5" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<path d="M 22.5,12 C 15,17 14,25 17,31 L 28,31 C 31,25 30,17 22.5,12 Z" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<line x1="20" y1="21" x2="25" y2="21" stroke="{S}" stroke-width="1.5"/>
<line x1="22.5" y1="18.5" x2="22.5" y2="23.5" stroke="{S}" stroke-width="1.5"/>
<rect x="15" y="31" width="15" height="3" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<path d="M 9,39 C 14,36 31,36 36,39 L 36,41 L 9,41 Z" fill="{F}" stroke="{S}" stroke-width="1.5"/>`,

	board.Rook: `
<path d="M 11,9 L 15,9 L 15,12 L 20,12 L 20,9 L 25,9 L 25,12 L 30,12 L 30,9 L 34,9 L 34,15 L 11,15 Z" fill="{F}" stroke="{S}" stroke-width="1.5" stroke-linejoin="round"/>
<path d="M 14,15 L 31,15 L 30,32 L 15,32 Z" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<rect x="12" y="32" width="21" height="4" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<rect x="9" y="36" width="27" height="4" fill="{F}" stroke="{S}" stroke-width="1.5"/>`,

	board.Queen: `
<circle cx="6" cy="12" r="2" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<circle cx="14" cy="9" r="2" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<circle cx="22.5" cy="8" r="2" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<circle cx="31" cy="9" r="2" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<circle cx="39" cy="12" r="2" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<path d="M 9,26 L 6,14 L 14,24 L 14,11 L 19,24 L 22.5,10 L 26,24 L 31,11 L 31,24 L 39,14 L 36,26 Z" fill="{F}" stroke="{S}" stroke-width="1.5" stroke-linejoin="round"/>
<path d="M 9,26 C 9,30 11,31 11,33 C 11,35 9,36 9,39 C 16,41 29,41 36,39 C 36,36 34,35 34,33 C 34,31 36,30 36,26 C 28,24 17,24 9,26 Z" fill="{F}" stroke="{S}" stroke-width="1.5"/>`,

	board.King: `
<line x1="22.5" y1="5" x2="22.5" y2="14" stroke="{S}" stroke-width="2"/>
<line x1="18.5" y1="8.5" x2="26.5" y2="8.5" stroke="{S}" stroke-width="2"/>
<path d="M 22.5,25 C 22.5,25 27,17.5 25.5,14.5 C 25.5,14.5 24.5,12 22.5,12 C 20.5,12 19.5,14.5 19.5,14.5 C 18,17.5 22.5,25 22.5,25 Z" fill="{F}" stroke="{S}" stroke-width="1.5"/>
<path d="M 11.5,37 C 17,40.5 28,40.5 33.5,37 L 33.5,30 C 33.5,30 42.5,25.5 39.5,19.5 C 35.5,13 25,16 22.5,23.5 C 20,16 9.5,13 5.5,19.5 C 2.5,25.5 11.5,30 11.5,30 Z" fill="{F}" stroke="{S}" stroke-width="1.5" stroke-linejoin="round"/>
<line x1="11.5" y1="30" x2="33.5" y2="30" stroke="{S}" stroke-width="1.5"/>`,
}

// pieceSVG returns an SVG document for piece p.
func pieceSVG(p board.Piece) string {
	fill, stroke := "#ffffff", "#000000"
	if p.Color() == board.Black {
		fill, stroke = "#222222", "#000000"
	}
	body := strings.NewReplacer("{F}", fill, "{S}", stroke).Replace(pieceShapes[p.Type()])
	return `<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">` + body + `</svg>`
}

// SpriteManager manages piece sprites.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	size        int     // Display size (e.g., 80)
	renderScale float64 // Render at higher resolution for quality (e.g., 3.0)
	scale       float64 // HiDPI factor applied when drawing
}

// NewSpriteManager creates a new sprite manager with pieces of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		size:        size,
		renderScale: 3.0, // Render at 3x resolution for sharp scaling
		scale:       1.0,
	}
	sm.loadPieces()
	return sm
}

// SetScale sets the HiDPI factor.
func (sm *SpriteManager) SetScale(scale float64) {
	sm.scale = scale
}

// GetPiece returns the sprite for a piece.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	return sm.pieces[p]
}

// loadPieces rasterizes every piece from its generated SVG.
func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for _, c := range []board.Color{board.White, board.Black} {
		for pt := board.Pawn; pt <= board.King; pt++ {
			piece := board.NewPiece(pt, c)

			icon, err := oksvg.ReadIconStream(strings.NewReader(pieceSVG(piece)))
			if err != nil {
				log.Printf("Failed to parse SVG for %v: %v", piece, err)
				continue
			}
			icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

			rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
			scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
			raster := rasterx.NewDasher(renderSize, renderSize, scanner)
			icon.Draw(raster, 1.0)

			sm.pieces[piece] = ebiten.NewImageFromImage(rgba)
		}
	}
}

// DrawPieceAt draws a piece with its top-left corner at logical (x, y).
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y float64) {
	sm.drawPiece(screen, p, x, y, 1.0)
}

// drawPiece draws p at logical (x, y) scaled by zoom around its top-left.
func (sm *SpriteManager) drawPiece(screen *ebiten.Image, p board.Piece, x, y, zoom float64) {
	if p == board.NoPiece {
		return
	}
	sprite := sm.GetPiece(p)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := zoom * sm.scale / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x*sm.scale, y*sm.scale)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
