package gitcli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandContext creates git processes. Tests swap it out.
var CommandContext = exec.CommandContext

func (g *Git) call(ctx context.Context, args []string) ([]byte, error) {
	g.cfg.Debugf("+ git %s", argsString(args))
	cmd := CommandContext(ctx, "git", args...)
	cmd.Dir = g.wd
	b, err := cmd.Output()
	if err != nil {
		if eerr, ok := err.(*exec.ExitError); ok && len(eerr.Stderr) > 0 {
			return b, fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(eerr.Stderr)))
		}
		return b, fmt.Errorf("git %s: %w", args[0], err)
	}
	return b, nil
}

func argsString(args []string) string {
	return strings.Join(args, " ")
}
