package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jswitch/internal/config"
	"jswitch/internal/java"
	"jswitch/internal/logging"
	"jswitch/internal/platform"
)

// app carries the collaborators every command needs. Fields left nil are
// filled from the running system before a command runs.
type app struct {
	ops         platform.Ops
	cfg         *config.Config
	out         io.Writer
	interactive bool

	setupLogging func(verbosity int)
	isTerminal   func() bool
	selectJdk    func(records []java.JdkRecord, active string) (java.JdkRecord, error)
	selectPath   func(title string, paths []string) (string, error)
	confirm      func(title, description string) (bool, error)
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{})
}

func newRootCmdFor(a *app) *cobra.Command {
	var (
		verbosity  int
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "jswitch",
		Short: "Find installed JDKs and switch the active one",
		Long: `jswitch discovers the JDKs installed on this machine, shows which one is
active, and switches between them by rewriting JAVA_HOME and the search path
(Windows) or the java alternative (Linux).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.setupLogging == nil {
				a.setupLogging = logging.SetupLogger
			}
			a.setupLogging(verbosity)
			logger := logging.GetLogger("cli")
			logger.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.init(cmd, configPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			for c := cmd; c != nil; c = c.Parent() {
				switch c.Name() {
				case "update", "version", "help", "completion", cobra.ShellCompRequestCmd:
					return
				}
			}
			a.checkForUpdateBackground()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", fmt.Sprintf("config file (default $%s or %s)", config.EnvConfigPath, config.DefaultPath()))

	rootCmd.AddCommand(
		newListCmd(a),
		newScanCmd(a),
		newCurrentCmd(a),
		newUseCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newRenameCmd(a),
		newAddPathCmd(a),
		newRemovePathCmd(a),
		newListPathsCmd(a),
		newDoctorCmd(a),
		newUpdateCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

func (a *app) init(cmd *cobra.Command, configPath string) error {
	if a.ops == nil {
		a.ops = platform.Current()
	}
	if a.cfg == nil {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		a.cfg = cfg
	}
	if a.out == nil {
		a.out = cmd.OutOrStdout()
	}
	if a.isTerminal == nil {
		a.isTerminal = stdoutIsTerminal
	}
	a.interactive = a.isTerminal()

	if a.selectJdk == nil {
		a.selectJdk = a.promptJdk
	}
	if a.selectPath == nil {
		a.selectPath = promptPath
	}
	if a.confirm == nil {
		a.confirm = confirmAction
	}
	return nil
}

func (a *app) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// saveConfig persists the config, wrapping the error for display
func (a *app) saveConfig() error {
	if err := a.cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
