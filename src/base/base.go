package base

import "fmt"

// Forsyth–Edwards Notation
const FEN_START_GAME string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PawnDir is the rank step a pawn of this color advances by. Rank 0 is
// the 8th rank internally, so white pawns walk toward smaller ranks.
func (c Color) PawnDir() int {
	if c == White {
		return -1
	}
	return 1
}

// BackRank is the internal rank holding the color's pieces at game start.
func (c Color) BackRank() int {
	if c == White {
		return 7
	}
	return 0
}

type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Letter is the uppercase SAN letter of the piece type; pawns have none.
func (pt PieceType) Letter() string {
	switch pt {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return ""
	}
}

// Piece identity is fixed at construction; position lives in the board
// array, HasMoved flips once the piece leaves its origin square.
type Piece struct {
	Type     PieceType
	Color    Color
	HasMoved bool
}

func NewPiece(pt PieceType, c Color) *Piece {
	return &Piece{Type: pt, Color: c}
}

func (p *Piece) IsSlider() bool {
	return p.Type == Bishop || p.Type == Rook || p.Type == Queen
}

// Square addresses the board with internal coordinates: File 0 is the
// a-file, Rank 0 is the 8th rank (the user-facing rank is 8-Rank).
type Square struct {
	File uint8
	Rank uint8
}

func (s Square) Index() int {
	return int(s.Rank)*8 + int(s.File)
}

// SquareAt builds a square from ints, rejecting anything off the 8x8 grid.
func SquareAt(file, rank int) (Square, error) {
	if !OnBoard(file, rank) {
		return Square{}, fmt.Errorf("%w: file=%d rank=%d", ErrOutOfBounds, file, rank)
	}
	return Square{File: uint8(file), Rank: uint8(rank)}, nil
}

func OnBoard(file, rank int) bool {
	return file >= 0 && file <= 7 && rank >= 0 && rank <= 7
}

func (s Square) Algebraic() string {
	return string([]byte{'a' + s.File, '8' - s.Rank})
}

func SquareFromAlgebraic(pos string) (Square, error) {
	if len(pos) != 2 || pos[0] < 'a' || pos[0] > 'h' || pos[1] < '1' || pos[1] > '8' {
		return Square{}, fmt.Errorf("%w: %q", ErrOutOfBounds, pos)
	}
	return Square{File: pos[0] - 'a', Rank: '8' - pos[1]}, nil
}

// IsLightSquare reports square shade by coordinate parity.
func IsLightSquare(s Square) bool {
	return (s.File+s.Rank)%2 == 0
}

// Move is built fresh per attempt; Captured and Promotion stay zero for
// plain moves.
type Move struct {
	From      Square
	To        Square
	Piece     PieceType
	Captured  PieceType
	Promotion PieceType
}

func (m Move) String() string {
	s := m.From.Algebraic() + m.To.Algebraic()
	if m.Promotion != NoPieceType {
		s += m.Promotion.Letter()
	}
	return s
}

// Player carries the per-color state that survives between moves.
type Player struct {
	Color           Color
	CastleKingSide  bool
	CastleQueenSide bool
	InCheck         bool
}

// Board owns every live piece; a square holds at most one.
type Board struct {
	squares     [64]*Piece
	White       Player
	Black       Player
	WhiteToMove bool
	EnPassant   *Square
	Halfmove    int
	Fullmove    int
}

func NewBoard() *Board {
	return &Board{
		White:       Player{Color: White},
		Black:       Player{Color: Black},
		WhiteToMove: true,
		Fullmove:    1,
	}
}

func (b *Board) SideToMove() Color {
	if b.WhiteToMove {
		return White
	}
	return Black
}

func (b *Board) Player(c Color) *Player {
	if c == White {
		return &b.White
	}
	return &b.Black
}

func (b *Board) PieceAt(s Square) *Piece {
	return b.squares[s.Index()]
}

func (b *Board) SetPieceAt(s Square, p *Piece) {
	b.squares[s.Index()] = p
}

// KingSquare scans for the color's king. Exactly one king per color is
// assumed; a missing king is an upstream defect.
func (b *Board) KingSquare(c Color) (Square, bool) {
	for idx := 0; idx < 64; idx++ {
		p := b.squares[idx]
		if p != nil && p.Type == King && p.Color == c {
			return Square{File: uint8(idx % 8), Rank: uint8(idx / 8)}, true
		}
	}
	return Square{}, false
}

// Clone deep-copies the board so simulations never alias live pieces.
func (b *Board) Clone() *Board {
	c := *b
	for idx, p := range b.squares {
		if p != nil {
			cp := *p
			c.squares[idx] = &cp
		}
	}
	if b.EnPassant != nil {
		ep := *b.EnPassant
		c.EnPassant = &ep
	}
	return &c
}

// EachPiece walks occupied squares in index order.
func (b *Board) EachPiece(fn func(s Square, p *Piece)) {
	for idx := 0; idx < 64; idx++ {
		if p := b.squares[idx]; p != nil {
			fn(Square{File: uint8(idx % 8), Rank: uint8(idx / 8)}, p)
		}
	}
}
