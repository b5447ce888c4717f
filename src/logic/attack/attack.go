package attack

import (
	"chesscore/src/base"
)

// Dir is a board direction as (rank step, file step).
type Dir struct {
	DR int
	DF int
}

func (d Dir) Opposite() Dir {
	return Dir{DR: -d.DR, DF: -d.DF}
}

var (
	RookDirs   = [4]Dir{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	BishopDirs = [4]Dir{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	AllDirs    = [8]Dir{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	KnightOffsets = [8]Dir{{2, 1}, {1, 2}, {-1, 2}, {-2, 1}, {-2, -1}, {-1, -2}, {1, -2}, {2, -1}}
)

// SliderDirs lists the directions a sliding piece may use; nil for
// non-sliders.
func SliderDirs(pt base.PieceType) []Dir {
	switch pt {
	case base.Bishop:
		return BishopDirs[:]
	case base.Rook:
		return RookDirs[:]
	case base.Queen:
		return AllDirs[:]
	default:
		return nil
	}
}

// Set is a square membership mask.
type Set [64]bool

func (s *Set) Add(sq base.Square) {
	s[sq.Index()] = true
}

func (s *Set) Has(sq base.Square) bool {
	return s[sq.Index()]
}

// Ray is one direction of attack from a piece, squares in marching order.
// Non-sliders use single-square rays per offset.
type Ray struct {
	Dir     Dir
	Squares []base.Square
}

// PieceAttacks is the detailed attack record for one piece.
type PieceAttacks struct {
	From  base.Square
	Piece base.PieceType
	Rays  []Ray
}

// Map is every square attacked by one color: the per-piece detail needed
// to rebuild check rays, plus a flattened set for membership tests.
type Map struct {
	Pieces []PieceAttacks
	All    Set
}

// Compute builds the attack map for color by. Knight and king offsets are
// attacked regardless of occupancy; pawn attacks are the forward diagonals
// only. Slider rays stop at the first occupied square, except that a ray
// hitting the enemy king runs one square past it, which keeps the king
// from stepping straight back along the check line.
func Compute(b *base.Board, by base.Color) *Map {
	m := &Map{}
	b.EachPiece(func(from base.Square, p *base.Piece) {
		if p.Color != by {
			return
		}
		pa := PieceAttacks{From: from, Piece: p.Type}
		switch p.Type {
		case base.Pawn:
			dr := by.PawnDir()
			for _, df := range []int{-1, 1} {
				d := Dir{DR: dr, DF: df}
				if sq, err := base.SquareAt(int(from.File)+df, int(from.Rank)+dr); err == nil {
					pa.Rays = append(pa.Rays, Ray{Dir: d, Squares: []base.Square{sq}})
					m.All.Add(sq)
				}
			}
		case base.Knight:
			for _, d := range KnightOffsets {
				if sq, err := base.SquareAt(int(from.File)+d.DF, int(from.Rank)+d.DR); err == nil {
					pa.Rays = append(pa.Rays, Ray{Dir: d, Squares: []base.Square{sq}})
					m.All.Add(sq)
				}
			}
		case base.King:
			for _, d := range AllDirs {
				if sq, err := base.SquareAt(int(from.File)+d.DF, int(from.Rank)+d.DR); err == nil {
					pa.Rays = append(pa.Rays, Ray{Dir: d, Squares: []base.Square{sq}})
					m.All.Add(sq)
				}
			}
		default:
			for _, d := range SliderDirs(p.Type) {
				ray := Ray{Dir: d}
				for step := 1; ; step++ {
					f := int(from.File) + d.DF*step
					r := int(from.Rank) + d.DR*step
					if !base.OnBoard(f, r) {
						break
					}
					sq := base.Square{File: uint8(f), Rank: uint8(r)}
					ray.Squares = append(ray.Squares, sq)
					m.All.Add(sq)
					blocker := b.PieceAt(sq)
					if blocker == nil {
						continue
					}
					if blocker.Type == base.King && blocker.Color != by {
						// keep marching one square past the enemy king
						f += d.DF
						r += d.DR
						if base.OnBoard(f, r) {
							behind := base.Square{File: uint8(f), Rank: uint8(r)}
							ray.Squares = append(ray.Squares, behind)
							m.All.Add(behind)
						}
					}
					break
				}
				if len(ray.Squares) > 0 {
					pa.Rays = append(pa.Rays, ray)
				}
			}
		}
		if len(pa.Rays) > 0 {
			m.Pieces = append(m.Pieces, pa)
		}
	})
	return m
}
