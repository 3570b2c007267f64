package cli

import (
	"github.com/spf13/cobra"

	"github.com/almartin82/sdschooldata/internal/contract"
	"github.com/almartin82/sdschooldata/internal/report"
	"github.com/almartin82/sdschooldata/internal/surface"
)

type verifyOptions struct {
	loader      string
	format      string
	concurrency int
	color       bool
	contracts   []string
}

func newVerifyCmd() *cobra.Command {
	var opts verifyOptions

	cmd := &cobra.Command{
		Use:   "verify [contract.yaml ...]",
		Short: "Check packages against surface contracts",
		Long: `verify loads every module named by the given contract files and checks its
symbols. Contracts are verified concurrently; a module that fails to load is
reported once, not once per symbol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.loader, "loader", contract.LoaderPackages, "loader for contracts that do not name one (packages or ast)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", report.FormatText, "output format (text or json)")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", 4, "number of modules verified at once (0 for no limit)")
	cmd.Flags().BoolVarP(&opts.color, "color", "c", false, "colorize text output")
	cmd.Flags().StringArrayVar(&opts.contracts, "contract", nil, "contract file to verify, in addition to arguments (repeatable)")
	return cmd
}

func runVerify(cmd *cobra.Command, args []string, opts verifyOptions) error {
	switch opts.format {
	case report.FormatText, report.FormatJSON:
	default:
		return usageError("unknown format %q (want %s or %s)", opts.format, report.FormatText, report.FormatJSON)
	}
	if _, err := contract.NewLoader(opts.loader, ""); err != nil {
		return usageError("%w", err)
	}

	paths := dedupe(append(append([]string{}, args...), opts.contracts...))
	if len(paths) == 0 {
		return usageError("no contract files given")
	}

	caches := make(map[string]*surface.CachingLoader)
	jobs := make([]surface.Job, 0, len(paths))
	for _, path := range paths {
		c, err := contract.Load(path)
		if err != nil {
			return usageError("%w", err)
		}
		job, err := c.Job(opts.loader)
		if err != nil {
			return usageError("contract %s: %w", path, err)
		}
		key := job.Loader.Name() + "\x00" + c.Dir
		if caches[key] == nil {
			caches[key] = surface.NewCachingLoader(job.Loader)
		}
		job.Loader = caches[key]
		jobs = append(jobs, job)
		l.Debug().Str("contract", path).Str("module", c.Module).Str("loader", job.Loader.Name()).Msg("queued")
	}

	reports, err := surface.VerifyAll(cmd.Context(), jobs, opts.concurrency, l)
	if err != nil {
		return err
	}
	if err := report.Write(cmd.OutOrStdout(), opts.format, reports, opts.color); err != nil {
		return err
	}

	for _, r := range reports {
		if !r.Passed() {
			return &exitError{code: exitFailed}
		}
	}
	return nil
}

// dedupe removes repeated entries and keeps the first occurrence's position.
func dedupe(s []string) []string {
	seen := make(map[string]bool, len(s))
	result := make([]string, 0, len(s))
	for _, v := range s {
		if seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
