//go:build !windows

package main

// ANSI sequences work out of the box outside windows.
func enableANSI() {}
