// Package cli implements the surfcheck command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/almartin82/sdschooldata/internal/logger"
)

// Version is the surfcheck release.
const Version = "0.1.0"

const (
	exitOK       = 0
	exitFailed   = 1
	exitUsage    = 2
	exitCanceled = 130
)

var l = logger.GetLogger()

// exitError carries a process exit code through cobra. err may be nil when
// the command already printed everything it had to say.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(format string, args ...any) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

// NewRootCmd builds the surfcheck command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:     "surfcheck",
		Version: Version,
		Short:   "Verify that a package exposes its promised API surface",
		Long: `surfcheck checks a package against a surface contract: a list of symbols that
must exist, which of them must be callable, and simple type predicates on
values (for example "Version is a string").

Contracts are YAML files:

  module: ./wrapper
  loader: packages        # packages (type-checked) or ast (parse only)
  symbols:
    - {name: FetchEnr, kind: function}
    - {name: GetAvailableYears, kind: function}
    - {name: Version, kind: value, predicate: string}

Settings can come from .surfcheck.yaml in the working directory or in
$HOME/.config, and from SURFCHECK_* environment variables. Flags win.

Exit status is 0 when every check passes, 1 when any check fails, 2 on
usage or contract errors and 130 when the run is interrupted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(cmd, v)
		},
	}
	root.SetVersionTemplate(`{{printf "surfcheck %s\n" .Version}}`)
	root.PersistentFlags().CountP("verbose", "v", "increase logging verbosity, 1=warn, 2=info, 3=debug, 4=trace")
	root.PersistentFlags().String("config", "", "config file (default .surfcheck.yaml in . or $HOME/.config)")

	root.AddCommand(newVerifyCmd(), newLocateCmd(), newSymbolsCmd())
	return root
}

// Execute runs surfcheck with the process arguments and returns the exit code.
func Execute(ctx context.Context) int {
	return run(ctx, NewRootCmd(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, "Error:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "Error:", err)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return exitCanceled
	}
	return exitUsage
}

// initializeConfig reads the config file if there is one, wires SURFCHECK_*
// environment variables and copies both onto flags the user did not set.
func initializeConfig(cmd *cobra.Command, v *viper.Viper) error {
	verboseCount, _ := cmd.Flags().GetCount("verbose")
	logger.SetLogLevel(verboseCount)

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".surfcheck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return usageError("read config: %w", err)
		}
		l.Debug().Msg("no config file found")
	} else {
		l.Debug().Str("configFile", v.ConfigFileUsed()).Msg("using config file")
	}

	// --contract binds to SURFCHECK_CONTRACT.
	v.SetEnvPrefix("SURFCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := bindFlags(cmd, v); err != nil {
		return err
	}
	// verbose may have come from the config file or SURFCHECK_VERBOSE.
	verboseCount, _ = cmd.Flags().GetCount("verbose")
	logger.SetLogLevel(verboseCount)
	return nil
}

// bindFlags applies config and environment values to every flag that was not
// set on the command line. List values are added one element at a time.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		l.Debug().Str("flag", f.Name).Msg("binding flag to config")

		val := v.Get(f.Name)
		if arr, ok := val.([]any); ok {
			for _, item := range arr {
				if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", item)); err != nil {
					errs = append(errs, fmt.Errorf("config %s: %w", f.Name, err))
				}
			}
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
			errs = append(errs, fmt.Errorf("config %s: %w", f.Name, err))
		}
	})
	if err := errors.Join(errs...); err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	return nil
}
