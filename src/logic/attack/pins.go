package attack

import (
	"chesscore/src/base"
)

// Pin records a piece stuck on the line between its own king and an
// enemy slider. Allowed holds every square the pinned piece may still
// occupy: the empty squares between king and pinner plus the pinner
// itself (a capture).
type Pin struct {
	Square  base.Square
	Dir     Dir
	Allowed Set
}

// Pins marches each direction outward from the color's king. The first
// piece met is a candidate only when friendly; the candidate is pinned
// when the next piece beyond it is an enemy slider whose directions
// include the ray.
func Pins(b *base.Board, c base.Color) []Pin {
	kingSq, ok := b.KingSquare(c)
	if !ok {
		return nil
	}
	var pins []Pin
	for _, d := range AllDirs {
		var candidate *base.Square
		var line []base.Square
		for step := 1; ; step++ {
			f := int(kingSq.File) + d.DF*step
			r := int(kingSq.Rank) + d.DR*step
			if !base.OnBoard(f, r) {
				break
			}
			sq := base.Square{File: uint8(f), Rank: uint8(r)}
			p := b.PieceAt(sq)
			if p == nil {
				line = append(line, sq)
				continue
			}
			if candidate == nil {
				if p.Color != c {
					break
				}
				cand := sq
				candidate = &cand
				continue
			}
			if p.Color != c && p.IsSlider() && sliderMoves(p.Type, d) {
				pin := Pin{Square: *candidate, Dir: d}
				for _, s := range line {
					pin.Allowed.Add(s)
				}
				pin.Allowed.Add(sq)
				pins = append(pins, pin)
			}
			break
		}
	}
	return pins
}

func sliderMoves(pt base.PieceType, d Dir) bool {
	for _, sd := range SliderDirs(pt) {
		if sd == d {
			return true
		}
	}
	return false
}

// Checker is one piece giving check, with the squares a defender could
// move to in order to block the check or capture the attacker. Contact
// checkers (knight, pawn, adjacent king) have only their own square.
type Checker struct {
	From  base.Square
	Piece base.PieceType
	Path  []base.Square
}

// Checkers scans the attack map for rays covering the king's square and
// returns every attacker with its path to the king.
func Checkers(m *Map, kingSq base.Square) []Checker {
	var out []Checker
	for _, pa := range m.Pieces {
		for _, ray := range pa.Rays {
			hit := -1
			for i, sq := range ray.Squares {
				if sq == kingSq {
					hit = i
					break
				}
			}
			if hit < 0 {
				continue
			}
			ck := Checker{From: pa.From, Piece: pa.Piece}
			ck.Path = append(ck.Path, ray.Squares[:hit]...)
			ck.Path = append(ck.Path, pa.From)
			out = append(out, ck)
			break
		}
	}
	return out
}
