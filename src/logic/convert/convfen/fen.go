package convfen

import (
	"strconv"
	"strings"

	"chesscore/src/base"
)

// FEN is the canonical interchange format: piece placement, side to move,
// castling rights, en passant square, halfmove clock, fullmove number.

func pieceFromRune(r rune) *base.Piece {
	c := base.White
	lower := r
	if r >= 'a' && r <= 'z' {
		c = base.Black
	} else {
		lower = r + ('a' - 'A')
	}
	switch lower {
	case 'p':
		return base.NewPiece(base.Pawn, c)
	case 'n':
		return base.NewPiece(base.Knight, c)
	case 'b':
		return base.NewPiece(base.Bishop, c)
	case 'r':
		return base.NewPiece(base.Rook, c)
	case 'q':
		return base.NewPiece(base.Queen, c)
	case 'k':
		return base.NewPiece(base.King, c)
	default:
		return nil
	}
}

func runeFromPiece(p *base.Piece) byte {
	var ch byte
	switch p.Type {
	case base.Pawn:
		ch = 'P'
	case base.Knight:
		ch = 'N'
	case base.Bishop:
		ch = 'B'
	case base.Rook:
		ch = 'R'
	case base.Queen:
		ch = 'Q'
	case base.King:
		ch = 'K'
	}
	if p.Color == base.Black {
		ch += 'a' - 'A'
	}
	return ch
}

func ConvertBoardToFEN(b *base.Board) string {
	var sb strings.Builder

	// internal rank 0 is the 8th rank, so index order is already FEN order
	for rank := 0; rank < 8; rank++ {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.PieceAt(base.Square{File: uint8(file), Rank: uint8(rank)})
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(runeFromPiece(p))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank < 7 {
			sb.WriteByte('/')
		}
	}

	if b.WhiteToMove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	cast := ""
	if b.White.CastleKingSide {
		cast += "K"
	}
	if b.White.CastleQueenSide {
		cast += "Q"
	}
	if b.Black.CastleKingSide {
		cast += "k"
	}
	if b.Black.CastleQueenSide {
		cast += "q"
	}
	if cast == "" {
		cast = "-"
	}
	sb.WriteString(cast + " ")

	if b.EnPassant == nil {
		sb.WriteString("- ")
	} else {
		sb.WriteString(b.EnPassant.Algebraic() + " ")
	}

	sb.WriteString(strconv.Itoa(b.Halfmove) + " ")
	sb.WriteString(strconv.Itoa(b.Fullmove))

	return sb.String()
}

// ConvertFENToBoard validates all six fields before touching the board,
// so a malformed string never yields a half-built position.
func ConvertFENToBoard(fen string) (*base.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, &base.InvalidFENError{Field: "record", Reason: "want 6 fields, got " + strconv.Itoa(len(parts))}
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, &base.InvalidFENError{Field: "placement", Reason: "want 8 ranks, got " + strconv.Itoa(len(ranks))}
	}
	for _, row := range ranks {
		count := 0
		prevDigit := false
		for _, ch := range row {
			if ch >= '1' && ch <= '8' {
				if prevDigit {
					return nil, &base.InvalidFENError{Field: "placement", Reason: "consecutive empty counts in " + row}
				}
				count += int(ch - '0')
				prevDigit = true
				continue
			}
			prevDigit = false
			if pieceFromRune(ch) == nil {
				return nil, &base.InvalidFENError{Field: "placement", Reason: "bad piece letter " + string(ch)}
			}
			count++
		}
		if count != 8 {
			return nil, &base.InvalidFENError{Field: "placement", Reason: "rank " + row + " does not sum to 8 files"}
		}
	}

	if parts[1] != "w" && parts[1] != "b" {
		return nil, &base.InvalidFENError{Field: "side to move", Reason: "want w or b, got " + parts[1]}
	}

	cast := parts[2]
	if cast != "-" {
		if len(cast) > 4 {
			return nil, &base.InvalidFENError{Field: "castling", Reason: cast}
		}
		seen := map[rune]bool{}
		for _, ch := range cast {
			if !strings.ContainsRune("KQkq", ch) || seen[ch] {
				return nil, &base.InvalidFENError{Field: "castling", Reason: cast}
			}
			seen[ch] = true
		}
	}

	ep := parts[3]
	if ep != "-" {
		if len(ep) != 2 || ep[0] < 'a' || ep[0] > 'h' || (ep[1] != '3' && ep[1] != '6') {
			return nil, &base.InvalidFENError{Field: "en passant", Reason: ep}
		}
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, &base.InvalidFENError{Field: "halfmove clock", Reason: parts[4]}
	}
	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 0 {
		return nil, &base.InvalidFENError{Field: "fullmove number", Reason: parts[5]}
	}

	// everything checked, build the board
	b := base.NewBoard()
	for r, row := range ranks {
		file := 0
		for _, ch := range row {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			sq := base.Square{File: uint8(file), Rank: uint8(r)}
			p := pieceFromRune(ch)
			p.HasMoved = !onOriginSquare(p, sq)
			b.SetPieceAt(sq, p)
			file++
		}
	}

	b.WhiteToMove = parts[1] == "w"
	b.White.CastleKingSide = strings.Contains(cast, "K")
	b.White.CastleQueenSide = strings.Contains(cast, "Q")
	b.Black.CastleKingSide = strings.Contains(cast, "k")
	b.Black.CastleQueenSide = strings.Contains(cast, "q")

	if ep != "-" {
		sq, _ := base.SquareFromAlgebraic(ep)
		b.EnPassant = &sq
	}
	b.Halfmove = halfmove
	b.Fullmove = fullmove
	return b, nil
}

// onOriginSquare guesses whether the piece could still be on its game-
// start square; the castling field stays authoritative for rights, this
// only keeps HasMoved consistent for kings, rooks and pawns.
func onOriginSquare(p *base.Piece, sq base.Square) bool {
	back := uint8(p.Color.BackRank())
	switch p.Type {
	case base.Pawn:
		pawnRank := uint8(6)
		if p.Color == base.Black {
			pawnRank = 1
		}
		return sq.Rank == pawnRank
	case base.King:
		return sq.Rank == back && sq.File == 4
	case base.Rook:
		return sq.Rank == back && (sq.File == 0 || sq.File == 7)
	default:
		return true
	}
}
