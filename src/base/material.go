package base

// Material aggregates one side's piece counts for draw detection.
// BishopShades records the square shade of each bishop in board order:
// 0 for light, 1 for dark.
type Material struct {
	Pawns        int
	Knights      int
	Bishops      int
	Rooks        int
	Queens       int
	BishopShades []int
}

func (m Material) Minors() int {
	return m.Knights + m.Bishops
}

// HasMatingMaterial is false for a bare king or king plus a single minor.
func (m Material) HasMatingMaterial() bool {
	if m.Pawns > 0 || m.Rooks > 0 || m.Queens > 0 {
		return true
	}
	return m.Minors() > 1
}

// CountMaterial tallies the color's pieces on the board.
func CountMaterial(b *Board, c Color) Material {
	var m Material
	b.EachPiece(func(s Square, p *Piece) {
		if p.Color != c {
			return
		}
		switch p.Type {
		case Pawn:
			m.Pawns++
		case Knight:
			m.Knights++
		case Bishop:
			m.Bishops++
			shade := 1
			if IsLightSquare(s) {
				shade = 0
			}
			m.BishopShades = append(m.BishopShades, shade)
		case Rook:
			m.Rooks++
		case Queen:
			m.Queens++
		}
	})
	return m
}
