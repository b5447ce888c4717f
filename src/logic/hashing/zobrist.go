package hashing

import (
	"chesscore/src/base"
)

// Zobrist holds the random key tables for position fingerprinting. Build
// it once with NewZobrist and pass it around; there is no package-level
// key state.
type Zobrist struct {
	piece     [2][6][64]uint64
	sideBlack uint64
	castling  [4]uint64
	epFile    [8]uint64
}

// fixed seed keeps hashes stable across runs
const zobristSeed uint64 = 0xE1C7B00D5EEDFACE

// xorshift64* PRNG
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func NewZobrist() *Zobrist {
	z := &Zobrist{}
	rng := &prng{state: zobristSeed}
	for c := 0; c < 2; c++ {
		for pt := 0; pt < 6; pt++ {
			for sq := 0; sq < 64; sq++ {
				z.piece[c][pt][sq] = rng.next()
			}
		}
	}
	z.sideBlack = rng.next()
	for i := range z.castling {
		z.castling[i] = rng.next()
	}
	for i := range z.epFile {
		z.epFile[i] = rng.next()
	}
	return z
}

// Hash XORs together the keys of every feature present: occupied squares,
// black to move, each held castling right, and the en-passant file when a
// target is set. Equal hashes count as equal positions for repetition.
func (z *Zobrist) Hash(b *base.Board) uint64 {
	var h uint64
	b.EachPiece(func(s base.Square, p *base.Piece) {
		h ^= z.piece[p.Color][p.Type-base.Pawn][s.Index()]
	})
	if !b.WhiteToMove {
		h ^= z.sideBlack
	}
	if b.White.CastleKingSide {
		h ^= z.castling[0]
	}
	if b.White.CastleQueenSide {
		h ^= z.castling[1]
	}
	if b.Black.CastleKingSide {
		h ^= z.castling[2]
	}
	if b.Black.CastleQueenSide {
		h ^= z.castling[3]
	}
	if b.EnPassant != nil {
		h ^= z.epFile[b.EnPassant.File]
	}
	return h
}
