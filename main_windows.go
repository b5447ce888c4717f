//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// enableANSI switches the windows console into VT processing so the
// board colors render.
func enableANSI() {
	stdout := windows.Handle(os.Stdout.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(stdout, &mode); err != nil {
		return
	}
	mode |= windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
	_ = windows.SetConsoleMode(stdout, mode)
}
