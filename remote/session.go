package remote

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/m-manu/filehound/fs"
	"github.com/pkg/sftp"
)

// Session is an SFTP file system served by "ssh -s host sftp". Close ends the ssh process.
type Session struct {
	*fs.SFTPFS
	client *sftp.Client
	stdin  io.WriteCloser
	cmd    *exec.Cmd
}

// Dial opens an SFTP session to the host of loc using the system ssh binary,
// so ssh config, agents and known hosts apply as usual
func Dial(loc Location, explicitKeyPath string) (*Session, error) {
	sshCmd := SSHSubsystemCommand(loc, explicitKeyPath, "sftp")
	sshCmd.Stderr = os.Stderr

	sshStdin, err := sshCmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("SFTP stdin pipe failed: %w", err)
	}
	sshStdout, err := sshCmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("SFTP stdout pipe failed: %w", err)
	}
	if err := sshCmd.Start(); err != nil {
		return nil, fmt.Errorf("SFTP ssh command failed: %w", err)
	}

	sftpClient, err := sftp.NewClientPipe(sshStdout, sshStdin)
	if err != nil {
		_ = sshCmd.Process.Kill()
		_ = sshCmd.Wait()
		return nil, fmt.Errorf("SFTP connection to %s failed: %w", loc.SSHSpec(), err)
	}
	return &Session{
		SFTPFS: fs.NewSFTPFS(sftpClient),
		client: sftpClient,
		stdin:  sshStdin,
		cmd:    sshCmd,
	}, nil
}

// Close closes the SFTP client and waits for ssh to exit
func (s *Session) Close() error {
	closeErr := s.client.Close()
	_ = s.stdin.Close()
	_ = s.cmd.Wait()
	return closeErr
}
