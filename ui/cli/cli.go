package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"chesscore/src"
	"chesscore/src/base"

	"golang.org/x/term"
)

type CLIProcessing struct {
	builder *src.GameBuilder
	draw    DrawFunc
	in      *os.File
	out     io.Writer

	// r is the only reader over in; a second buffered reader would
	// swallow bytes the first one already consumed
	r        *bufio.Reader
	rawState *term.State
}

func NewCLI(b *src.GameBuilder, draw DrawFunc) *CLIProcessing {
	return &CLIProcessing{
		builder: b,
		draw:    draw,
		in:      os.Stdin,
		out:     os.Stdout,
		r:       bufio.NewReader(os.Stdin),
	}
}

// Run prefers raw mode so arrow keys can drive undo/redo, falling back
// to plain line input when the terminal refuses.
func (c *CLIProcessing) Run() error {
	fd := int(c.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return c.RunLineMode()
	}
	c.rawState = oldState
	defer func() {
		c.rawState = nil
		term.Restore(fd, oldState) //nolint:errcheck
	}()

	r := c.r
	var inputBuf strings.Builder

	c.redraw()
	fmt.Fprint(c.out, "\nType a move (SAN or e2e4) and press Enter; arrows undo/redo, 'f' FEN, 'm' moves, 'q' quit.\n")

	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}

		if b == 3 { // Ctrl+C
			fmt.Fprintln(c.out, "\nInterrupted")
			return nil
		}
		if b == 0x1b { // escape sequence, possible arrow
			b1, err := r.ReadByte()
			if err != nil {
				continue
			}
			b2, err := r.ReadByte()
			if err != nil {
				continue
			}
			if b1 == '[' {
				switch b2 {
				case 'D': // left arrow
					c.builder.Undo()
					c.redraw()
				case 'C': // right arrow
					c.builder.Redo()
					c.redraw()
				}
			}
			continue
		}
		if b == '\r' || b == '\n' {
			line := strings.TrimSpace(inputBuf.String())
			inputBuf.Reset()
			fmt.Fprintln(c.out)
			if line == "" {
				continue
			}
			if quit := c.handle(line); quit {
				return nil
			}
			continue
		}
		if b == 127 || b == 8 { // backspace
			s := inputBuf.String()
			if len(s) > 0 {
				inputBuf.Reset()
				inputBuf.WriteString(s[:len(s)-1])
				fmt.Fprint(c.out, "\b \b")
			}
			continue
		}
		inputBuf.WriteByte(b)
		fmt.Fprintf(c.out, "%c", b)
	}
}

// RunLineMode reads one command per line from stdin.
func (c *CLIProcessing) RunLineMode() error {
	c.redraw()
	fmt.Fprint(c.out, "\nCommands: move (SAN or e2e4), 'f' FEN, 'm' moves, 'u' undo, 'r' redo, 'q' quit.\n> ")
	for {
		line, err := c.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			fmt.Fprint(c.out, "> ")
			continue
		}
		if quit := c.handle(line); quit {
			return nil
		}
		fmt.Fprint(c.out, "> ")
	}
}

func (c *CLIProcessing) readLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// handle runs one command; true means quit.
func (c *CLIProcessing) handle(line string) bool {
	switch line {
	case "q", "quit", "exit":
		return true
	case "f", "fen":
		fmt.Fprintln(c.out, c.builder.FEN())
		return false
	case "m", "moves":
		fmt.Fprintln(c.out, c.builder.MovesAsText())
		return false
	case "u", "undo":
		c.builder.Undo()
		c.redraw()
		return false
	case "r", "redo":
		c.builder.Redo()
		c.redraw()
		return false
	}

	c.playMove(line)
	if terminalFinished(c.builder.Status()) {
		fmt.Fprintf(c.out, "Game over: %s\n", c.builder.Status())
	}
	return false
}

// playMove accepts either SAN ("Nf3", "exd5", "e8=Q") or a coordinate
// pair ("e2e4"); the coordinate path exercises the two-phase promotion
// protocol with a piece prompt.
func (c *CLIProcessing) playMove(text string) {
	if from, to, ok := parseCoords(text); ok {
		outcome := c.builder.AttemptMove(from, to)
		switch outcome.Kind {
		case src.AwaitingPromotion:
			outcome = c.builder.ResolvePromotion(c.askPromotion())
			if outcome.Kind == src.Rejected {
				if errors.Is(outcome.Err, src.ErrPromotionCancelled) {
					fmt.Fprintln(c.out, "Move cancelled")
				} else {
					fmt.Fprintf(c.out, "Rejected: %v\n", outcome.Err)
				}
				return
			}
			c.redraw()
		case src.Rejected:
			fmt.Fprintf(c.out, "Rejected: %v\n", outcome.Err)
		case src.Applied:
			c.redraw()
		}
		return
	}

	if _, err := c.builder.MoveSAN(text); err != nil {
		fmt.Fprintf(c.out, "Rejected: %v\n", err)
		return
	}
	c.redraw()
}

// askPromotion reads the promotion piece; empty or unknown input cancels.
// During raw mode the terminal drops back to cooked input for the reply
// so the typed letter is echoed and line-edited as usual.
func (c *CLIProcessing) askPromotion() *base.PieceType {
	fmt.Fprint(c.out, "Promote to (q/r/b/n, empty cancels): ")
	if c.rawState != nil {
		fd := int(c.in.Fd())
		term.Restore(fd, c.rawState) //nolint:errcheck
		defer term.MakeRaw(fd)       //nolint:errcheck
	}
	line, err := c.readLine()
	if err != nil {
		return nil
	}
	var pt base.PieceType
	switch strings.ToLower(line) {
	case "q":
		pt = base.Queen
	case "r":
		pt = base.Rook
	case "b":
		pt = base.Bishop
	case "n":
		pt = base.Knight
	default:
		return nil
	}
	return &pt
}

func parseCoords(text string) (base.Square, base.Square, bool) {
	if len(text) != 4 {
		return base.Square{}, base.Square{}, false
	}
	from, err := base.SquareFromAlgebraic(text[:2])
	if err != nil {
		return base.Square{}, base.Square{}, false
	}
	to, err := base.SquareFromAlgebraic(text[2:])
	if err != nil {
		return base.Square{}, base.Square{}, false
	}
	return from, to, true
}

func (c *CLIProcessing) redraw() {
	c.draw(c.builder.Board())
	c.printStatus()
}

func (c *CLIProcessing) printStatus() {
	b := c.builder.Board()
	fmt.Fprintf(c.out, "%s to move, status: %s\n", b.SideToMove(), c.builder.Status())
}

func terminalFinished(gs base.GameStatus) bool {
	return gs.IsTerminal()
}
