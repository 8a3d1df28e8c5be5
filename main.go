package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/m-manu/filehound/config"
	"github.com/m-manu/filehound/fmte"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Constants indicating return codes of this tool, when run from command line
const (
	exitCodeSuccess = iota
	exitCodeInvalidArgs
	exitCodeConfigError
	exitCodeInvalidQuery
	exitCodeRemoteError
	exitCodeSearchError
	exitCodeOutputError
)

const version = "1.0.0"

// exitError carries the exit code a failure should end the program with
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

var flags struct {
	getConfig     func() (*config.QueryConfig, error)
	isSync        func() bool
	getOutputMode func() outputMode
	getSSHKey     func() string
	setupLogging  func()
}

func setupConfigOpt(f *pflag.FlagSet) {
	configPathPtr := f.StringP("config", "c", "", "path to a YAML file with a saved search\n"+
		"(filters given as flags override the ones in the file)")
	overlay := setupFilterOpts(f)
	flags.getConfig = func() (*config.QueryConfig, error) {
		cfg := &config.QueryConfig{}
		if *configPathPtr != "" {
			var err error
			cfg, err = config.Load(*configPathPtr)
			if err != nil {
				return nil, err
			}
		}
		overlay(cfg)
		return cfg, nil
	}
}

// setupFilterOpts defines the filter flags and returns a function copying the ones
// given on the command line into a saved search
func setupFilterOpts(f *pflag.FlagSet) func(cfg *config.QueryConfig) {
	extPtr := f.StringSliceP("ext", "e", nil, "match files having any of these extensions (leading dot optional)")
	globPtr := f.StringP("glob", "g", "", "match names against a glob such as \"*.json\"\n"+
		"(a pattern containing / is matched against the whole path, ** spans directories)")
	likePtr := f.String("like", "", "match paths against a regular expression")
	discardPtr := f.StringSlice("discard", nil, "skip paths matching any of these regular expressions")
	discardFromPtr := f.String("discard-from", "", "path to file containing newline separated regular expressions of paths to skip")
	sizePtr := f.StringP("size", "s", "", "match sizes, such as \"20\", \"<10k\" or \">=1.5g\" (binary units)")
	emptyPtr := f.Bool("empty", false, "match empty files")
	modifiedPtr := f.StringP("modified", "m", "", "match modification age, such as \"< 2 days\" or \">= 8 hours\"")
	accessedPtr := f.String("accessed", "", "match access age, such as \"< 10 minutes\"")
	changedPtr := f.String("changed", "", "match status change age, such as \"> 1 week\"")
	socketPtr := f.Bool("socket", false, "match unix domain sockets")
	dirsPtr := f.BoolP("dirs", "d", false, "report directories instead of files (search roots are never reported)")
	hiddenFilesPtr := f.Bool("ignore-hidden-files", false, "skip files whose name starts with a dot")
	hiddenDirsPtr := f.Bool("ignore-hidden-dirs", false, "don't descend into directories whose name starts with a dot")
	depthPtr := f.Int("depth", 0, "maximum depth below each search root, 0 meaning immediate children only\n"+
		"(unbounded if not set; when set, nested search roots are all searched)")
	notPtr := f.Bool("not", false, "report entries that don't match the filters")
	parallelismPtr := f.Int("parallelism", 0, "maximum number of concurrent file system calls (default: number of CPUs)")
	return func(cfg *config.QueryConfig) {
		if f.Changed("ext") {
			cfg.Ext = *extPtr
		}
		if f.Changed("glob") {
			cfg.Glob = *globPtr
		}
		if f.Changed("like") {
			cfg.Like = *likePtr
		}
		if f.Changed("discard") {
			cfg.Discard = *discardPtr
		}
		if f.Changed("discard-from") {
			cfg.DiscardFrom = *discardFromPtr
		}
		if f.Changed("size") {
			cfg.Size = *sizePtr
		}
		if f.Changed("empty") {
			cfg.Empty = *emptyPtr
		}
		if f.Changed("modified") {
			cfg.Modified = *modifiedPtr
		}
		if f.Changed("accessed") {
			cfg.Accessed = *accessedPtr
		}
		if f.Changed("changed") {
			cfg.Changed = *changedPtr
		}
		if f.Changed("socket") {
			cfg.Socket = *socketPtr
		}
		if f.Changed("dirs") {
			cfg.Directories = *dirsPtr
		}
		if f.Changed("ignore-hidden-files") {
			cfg.IgnoreHiddenFiles = *hiddenFilesPtr
		}
		if f.Changed("ignore-hidden-dirs") {
			cfg.IgnoreHiddenDirectories = *hiddenDirsPtr
		}
		if f.Changed("depth") {
			depth := *depthPtr
			cfg.Depth = &depth
		}
		if f.Changed("not") {
			cfg.Not = *notPtr
		}
		if f.Changed("parallelism") {
			cfg.Parallelism = *parallelismPtr
		}
	}
}

func setupSyncOpt(f *pflag.FlagSet) {
	syncPtr := f.Bool("sync", false, "walk search roots one after another, stopping at the first error")
	flags.isSync = func() bool {
		return *syncPtr
	}
}

func setupOutputOpts(f *pflag.FlagSet) {
	longPtr := f.BoolP("long", "l", false, "print a table of paths, sizes and modification times")
	csvPtr := f.Bool("csv", false, "print path,size,modified (unix seconds) rows")
	countPtr := f.Bool("count", false, "print the number of matches per extension instead of the matches")
	flags.getOutputMode = func() outputMode {
		switch {
		case *longPtr:
			return outputLong
		case *csvPtr:
			return outputCSV
		case *countPtr:
			return outputCount
		}
		return outputPlain
	}
}

func setupSSHKeyOpt(f *pflag.FlagSet) {
	sshKeyPtr := f.String("ssh-key", "", "path to the SSH private key for remote search roots\n"+
		"(if not set, ssh picks keys from its config and agent as usual)")
	flags.getSSHKey = func() string {
		return *sshKeyPtr
	}
}

func setupLoggingOpts(f *pflag.FlagSet) {
	verbosePtr := f.BoolP("verbose", "v", false, "print progress and diagnostics")
	quietPtr := f.BoolP("quiet", "q", false, "print matches and errors only")
	flags.setupLogging = func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		if *verbosePtr {
			fmte.VerboseOn()
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
		if *quietPtr {
			fmte.Off()
		}
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filehound [flags] [path...]",
		Short: "filehound finds files and directories matching filters",
		Long: `filehound finds files (or, with --dirs, directories) below one or more search roots
that match all of the given filters.

Search roots default to the current directory. A root may be remote, written as
[user@]host:[port:]path, in which case it's searched over SFTP using the system ssh.
A search with no filter at all matches nothing.`,
		Example: `  filehound --ext json,yaml ~/projects
  filehound --size ">1g" --modified "> 30 days" /srv/data backup@nas:/volume1
  filehound --dirs --glob "node_modules" --depth 3 .
  filehound --config ~/.config/filehound/stale-logs.yaml --count`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.setupLogging()
			cfg, err := flags.getConfig()
			if err != nil {
				return &exitError{exitCodeConfigError, err}
			}
			roots := args
			if len(roots) == 0 {
				roots = cfg.Paths
			}
			sshKey := flags.getSSHKey()
			if sshKey == "" {
				sshKey = cfg.SSHKey
			}
			s := search{
				cfg:    cfg,
				roots:  roots,
				sync:   flags.isSync(),
				output: flags.getOutputMode(),
				sshKey: sshKey,
				out:    out,
			}
			return s.run(cmd.Context())
		},
	}
	cmd.SetOut(out)
	f := cmd.Flags()
	f.SortFlags = false
	setupConfigOpt(f)
	setupSyncOpt(f)
	setupOutputOpts(f)
	setupSSHKeyOpt(f)
	setupLoggingOpts(f)
	cmd.MarkFlagsMutuallyExclusive("long", "csv", "count")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	return cmd
}

func handlePanic() {
	err := recover()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Program exited unexpectedly. "+
			"Please report the below error to the author:\n"+
			"%+v\n", err)
		_, _ = fmt.Fprintln(os.Stderr, string(debug.Stack()))
	}
}

func main() {
	defer handlePanic()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err == nil {
		os.Exit(exitCodeSuccess)
	}
	fmte.PrintfErr("error: %v\n", err)
	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	fmte.PrintfErr("Run \"filehound --help\" for usage\n")
	os.Exit(exitCodeInvalidArgs)
}
