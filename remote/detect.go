package remote

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/m-manu/filehound/fmte"
)

const probeTimeout = 10 * time.Second

// Probe checks that the host of loc accepts a non-interactive ssh login, so that
// an unreachable host fails fast with ssh's own explanation
func Probe(ctx context.Context, loc Location, explicitKeyPath string) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	args := append(SSHArgs(loc, explicitKeyPath), "true")
	output, err := exec.CommandContext(ctx, "ssh", args...).CombinedOutput()
	if err != nil {
		reason := strings.TrimSpace(string(output))
		if reason == "" {
			reason = err.Error()
		}
		return fmt.Errorf("couldn't log in to %s: %s", loc.SSHSpec(), reason)
	}
	fmte.PrintfV("Host %s is reachable\n", loc.SSHSpec())
	return nil
}
