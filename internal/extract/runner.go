package extract

import (
	"context"
	"os/exec"
)

// Runner starts an external program and waits for it to exit.
type Runner interface {
	// Run returns the combined stdout and stderr of the program. A non-nil
	// *exec.ExitError means the program ran and exited unsuccessfully; any
	// other error means it could not be run at all.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// BinaryRunner runs programs on the local machine.
type BinaryRunner struct{}

var _ Runner = BinaryRunner{}

func (BinaryRunner) Run(
	ctx context.Context,
	name string,
	args ...string,
) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	return cmd.CombinedOutput()
}
