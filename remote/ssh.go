package remote

import (
	"fmt"
	"os/exec"
)

func connectionArgs(loc Location, explicitKeyPath string) []string {
	args := make([]string, 0, 8)
	if loc.User != "" {
		args = append(args, "-l", loc.User)
	}
	if loc.Port != 0 {
		args = append(args, "-p", fmt.Sprintf("%d", loc.Port))
	}
	if explicitKeyPath != "" {
		args = append(args, "-i", explicitKeyPath)
	}
	return args
}

// SSHArgs builds the command-line arguments for the system ssh binary
// based on the given Location and optional explicit key path.
func SSHArgs(loc Location, explicitKeyPath string) []string {
	args := connectionArgs(loc, explicitKeyPath)
	// Disable pseudo-terminal allocation for non-interactive use
	args = append(args, "-T", "-o", "BatchMode=yes")
	return append(args, loc.Host)
}

// SSHSubsystemCommand creates an exec.Cmd that invokes an SSH subsystem (e.g. sftp).
func SSHSubsystemCommand(loc Location, explicitKeyPath string, subsystem string) *exec.Cmd {
	args := connectionArgs(loc, explicitKeyPath)
	args = append(args, "-s", loc.Host, subsystem)
	return exec.Command("ssh", args...)
}
