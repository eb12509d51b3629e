package app

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentstation/codesync/cmd/codesync/cmd/lookup"
	"github.com/agentstation/codesync/cmd/codesync/cmd/merge"
	"github.com/agentstation/codesync/cmd/codesync/cmd/version"
	"github.com/agentstation/codesync/pkg/errors"
	"github.com/agentstation/codesync/pkg/logging"
)

// Execute runs the codesync CLI with the given arguments. With no
// subcommand it runs merge.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()

	if runsMerge(rootCmd, args) {
		args = append([]string{"merge"}, args...)
	}
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "codesync",
		Short:   "Reconcile a FHIR CodeSystem against the NCI Thesaurus",
		Version: a.version,
		Long: `codesync merges proposed concepts into an existing FHIR CodeSystem,
using the NCI Thesaurus flat file as the source of truth for which codes
exist and what their preferred display is.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.codesync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", a.config.Format, "report format: table, json, yaml, text")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("codesync {{.Version}}\n")

	rootCmd.AddCommand(merge.NewCommand(a))
	rootCmd.AddCommand(lookup.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config
// when --config names a file, then rebuilds the logger from the final
// settings.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if cmd.Flags().Changed("config") {
		config, err := LoadConfig(mustGetString(cmd, "config"))
		if err != nil {
			return errors.WrapResource("load", "config", "", err)
		}
		a.config = config
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	if !a.fixedLogger {
		logger := NewLogger(a.config)
		a.logger = &logger
	}
	logging.SetDefault(*a.logger)

	return nil
}

// runsMerge reports whether args name no subcommand, so that merge should
// run. Merge's own flags are unknown to the root command, so this scans
// for the first positional token instead of asking cobra: only a value
// following a root flag that takes one is skipped.
func runsMerge(rootCmd *cobra.Command, args []string) bool {
	for i, arg := range args {
		switch {
		case arg == "--":
			return true
		case arg == "-h" || arg == "--help" || arg == "--version":
			return false
		case strings.HasPrefix(arg, "-"):
			continue
		case i > 0 && takesValue(rootCmd, args[i-1]):
			continue
		}
		return !isSubcommand(rootCmd, arg)
	}
	return true
}

// takesValue reports whether arg is a root flag whose value is the next
// token.
func takesValue(rootCmd *cobra.Command, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	var flag *pflag.Flag
	switch {
	case strings.HasPrefix(arg, "--"):
		flag = rootCmd.PersistentFlags().Lookup(strings.TrimPrefix(arg, "--"))
	case len(arg) == 2 && arg[0] == '-':
		flag = rootCmd.PersistentFlags().ShorthandLookup(arg[1:])
	}
	return flag != nil && flag.NoOptDefVal == ""
}

func isSubcommand(rootCmd *cobra.Command, name string) bool {
	switch name {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return false
}

// ExitOnError prints err and exits with status 1. It is meant for
// top-level error handling in main.go.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // exiting anyway
		_, _ = os.Stderr.WriteString("codesync: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
