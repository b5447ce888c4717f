package main

import (
	"context"
	"fmt"
	"os"

	"chesscore/src"
	"chesscore/src/logx"
	clic "chesscore/ui/cli"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := (&cli.Command{
		Name:  "chesscore",
		Usage: "chess rules engine with a terminal front end",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "fen",
				Usage: "starting position in FEN; default is the classic setup",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
				Value: "warn",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "plain board output without ANSI colors",
			},
			&cli.BoolFlag{
				Name:  "line-mode",
				Usage: "force line input instead of raw terminal mode",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			enableANSI()

			logger := logx.NewLogx(logx.LevelByString(c.String("log-level")), true, os.Stderr)
			gb := src.NewBuilderBoard(logger)

			if fen := c.String("fen"); fen != "" {
				if _, err := gb.CreateFromFEN(fen); err != nil {
					return fmt.Errorf("bad --fen: %w", err)
				}
			} else {
				gb.CreateClassic()
			}

			draw := clic.PrintBoard
			if c.Bool("no-color") {
				draw = clic.PrintBoardPlain
			}
			cl := clic.NewCLI(gb, draw)
			if c.Bool("line-mode") {
				return cl.RunLineMode()
			}
			return cl.Run()
		},
	}).Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
	}
}
