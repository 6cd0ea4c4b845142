package main

import (
	"context"
	"io"
	"os/exec"
	"runtime"
)

// openerCommand is the platform command that opens a file in its default
// application.
func openerCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

func openFile(ctx context.Context, path string, stderr io.Writer) error {
	name, args := openerCommand(runtime.GOOS, path)
	return runCommand(ctx, stderr, name, args...)
}

func runCommand(ctx context.Context, stderr io.Writer, name string, args ...string) error {
	execCmd := exec.CommandContext(ctx, name, args...)
	execCmd.Stdout = stderr
	execCmd.Stderr = stderr
	return execCmd.Run()
}
