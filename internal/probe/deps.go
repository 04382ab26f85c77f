package probe

import (
	"fmt"
	"os/exec"
	"strings"
)

// requiredCommands are the external binaries the probes shell out to. HTTP
// and TCP checks are native, so ping is the only one left.
var requiredCommands = []string{"ping"}

// CheckDependencies verifies the required system tools are on PATH. A miss
// is a fatal startup error for the caller.
func CheckDependencies() error {
	return checkDependencies(exec.LookPath)
}

func checkDependencies(lookPath func(string) (string, error)) error {
	var missing []string
	for _, cmd := range requiredCommands {
		if _, err := lookPath(cmd); err != nil {
			missing = append(missing, cmd)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing dependencies: %s", strings.Join(missing, " "))
	}
	return nil
}
