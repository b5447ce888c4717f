package moves

import (
	"fmt"
	"regexp"
	"strings"

	"chesscore/src/base"
)

// Standard Algebraic Notation, one move at a time.

var reSAN = regexp.MustCompile(`^([KQRBN])?([a-h])?([1-8])?(x)?([a-h][1-8])(=?([QRBN]))?$`)

// MoveText renders the move as SAN, disambiguating against the legal move
// set that was current when the move was chosen: file first, then rank,
// then both. Castling renders as O-O / O-O-O regardless.
func MoveText(mv base.Move, legal []base.Move, isCheck, isMate bool) string {
	suffix := ""
	if isMate {
		suffix = "#"
	} else if isCheck {
		suffix = "+"
	}

	if mv.Piece == base.King && mv.From.File == 4 {
		if mv.To.File == 6 {
			return "O-O" + suffix
		}
		if mv.To.File == 2 {
			return "O-O-O" + suffix
		}
	}

	var sb strings.Builder
	capture := mv.Captured != base.NoPieceType

	if mv.Piece == base.Pawn {
		if capture {
			sb.WriteByte('a' + mv.From.File)
			sb.WriteByte('x')
		}
	} else {
		sb.WriteString(mv.Piece.Letter())
		sb.WriteString(disambiguation(mv, legal))
		if capture {
			sb.WriteByte('x')
		}
	}

	sb.WriteString(mv.To.Algebraic())
	if mv.Promotion != base.NoPieceType {
		sb.WriteByte('=')
		sb.WriteString(mv.Promotion.Letter())
	}
	sb.WriteString(suffix)
	return sb.String()
}

// disambiguation looks for same-type rivals that could legally land on
// the same destination.
func disambiguation(mv base.Move, legal []base.Move) string {
	var sameFile, sameRank, rivals bool
	for _, other := range legal {
		if other.From == mv.From || other.To != mv.To || other.Piece != mv.Piece {
			continue
		}
		rivals = true
		if other.From.File == mv.From.File {
			sameFile = true
		}
		if other.From.Rank == mv.From.Rank {
			sameRank = true
		}
	}
	if !rivals {
		return ""
	}
	fileCh := string([]byte{'a' + mv.From.File})
	rankCh := string([]byte{'8' - mv.From.Rank})
	switch {
	case !sameFile:
		return fileCh
	case !sameRank:
		return rankCh
	default:
		return fileCh + rankCh
	}
}

// ParseSAN resolves SAN text against the current legal move set.
func ParseSAN(b *base.Board, san string) (base.Move, error) {
	text := strings.TrimRight(strings.TrimSpace(san), "+#!?")
	if text == "" {
		return base.Move{}, fmt.Errorf("%w: empty SAN", base.ErrIllegalMove)
	}

	legal := LegalMoves(b)

	// castles first
	if upper := strings.ReplaceAll(strings.ToUpper(text), "0", "O"); upper == "O-O" || upper == "O-O-O" {
		toFile := uint8(6)
		if upper == "O-O-O" {
			toFile = 2
		}
		for _, mv := range legal {
			if mv.Piece == base.King && mv.From.File == 4 && mv.To.File == toFile {
				return mv, nil
			}
		}
		return base.Move{}, fmt.Errorf("%w: %s", base.ErrIllegalMove, san)
	}

	m := reSAN.FindStringSubmatch(text)
	if m == nil {
		return base.Move{}, fmt.Errorf("%w: cannot parse %q", base.ErrIllegalMove, san)
	}
	pieceStr, fileStr, rankStr, destStr, promoStr := m[1], m[2], m[3], m[5], m[7]

	pt := base.Pawn
	switch pieceStr {
	case "K":
		pt = base.King
	case "Q":
		pt = base.Queen
	case "R":
		pt = base.Rook
	case "B":
		pt = base.Bishop
	case "N":
		pt = base.Knight
	}
	promo := base.NoPieceType
	switch promoStr {
	case "Q":
		promo = base.Queen
	case "R":
		promo = base.Rook
	case "B":
		promo = base.Bishop
	case "N":
		promo = base.Knight
	}
	dest, err := base.SquareFromAlgebraic(destStr)
	if err != nil {
		return base.Move{}, fmt.Errorf("%w: %q", base.ErrIllegalMove, san)
	}

	var matched []base.Move
	for _, mv := range legal {
		if mv.Piece != pt || mv.To != dest || mv.Promotion != promo {
			continue
		}
		if fileStr != "" && mv.From.File != fileStr[0]-'a' {
			continue
		}
		if rankStr != "" && mv.From.Rank != '8'-rankStr[0] {
			continue
		}
		matched = append(matched, mv)
	}
	switch len(matched) {
	case 1:
		return matched[0], nil
	case 0:
		return base.Move{}, fmt.Errorf("%w: %s", base.ErrIllegalMove, san)
	default:
		return base.Move{}, fmt.Errorf("%w: ambiguous %s", base.ErrIllegalMove, san)
	}
}
