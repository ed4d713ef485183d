package main

import (
	"fmt"
	"io"

	"github.com/arloliu/quadpack/config"
	"github.com/arloliu/quadpack/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries the state shared by the subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string
	logFile    string

	cfg    *config.Config
	log    zerolog.Logger
	closer io.Closer
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "quadpack: %v\n", err)
		return 1
	}

	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "quadpack",
		Short:         "Quadtree image compressor",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Arguments are valid by now; later failures are not usage errors.
			cmd.SilenceUsage = true
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}

			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "JSON config file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", "", "log format (auto, console, json)")
	pf.StringVar(&a.logFile, "log-file", "", "also write logs to this rotating file")

	root.AddCommand(newCompressCmd(a), newInspectCmd(a), newRenderCmd(a))

	return root
}

// setup layers defaults, the config file, the environment and the root
// flags, then builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	cfg.LoadFromEnv()

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.logFile
	}
	if err := cfg.Log.Validate(); err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log, a.stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger
	a.closer = closer

	return nil
}
