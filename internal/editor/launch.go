package editor

import (
	"fmt"
	"os/exec"
)

// Launcher opens a project folder in the external editor.
type Launcher interface {
	Open(path string, newWindow bool) error
}

// CLILauncher spawns the editor's command-line binary. The spawn is
// fire-and-forget: the server never waits for the editor to exit.
type CLILauncher struct {
	Command string
}

// Open starts `cursor [-n] <path>` detached. An error means the binary is
// missing or the spawn failed; callers treat that as best-effort and log.
func (l CLILauncher) Open(path string, newWindow bool) error {
	args := []string{path}
	if newWindow {
		args = []string{"-n", path}
	}
	cmd := exec.Command(l.Command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", l.Command, err)
	}
	// Reap the child in the background so it doesn't linger as a zombie.
	go cmd.Wait()
	return nil
}
