package ioclassify

import (
	"context"
	"os"
	"os/exec"
)

// invoke runs the classifier binary against dbFile (the reference
// database) and queryFile (the pending-review set), writing its result
// table to outFile. It mirrors a plain positional-argument subprocess
// call, not a templated command builder -- the classifier's argument
// surface is fixed and small enough that a builder would add nothing.
func invoke(ctx context.Context, binary, dbFile, queryFile, outFile string) error {
	if _, err := os.Stat(binary); err != nil {
		return BinaryNotFoundError(binary)
	}

	cmd := exec.CommandContext(ctx, binary,
		"-d", dbFile,
		"-i", queryFile,
		"--skip-exact-matches",
		"--redo",
	)
	if err := cmd.Run(); err != nil {
		return InvokeError(err)
	}

	if _, err := os.Stat(outFile); err != nil {
		return InvokeError(err)
	}
	return nil
}
