package cli

import (
	"fmt"
	"go/token"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/almartin82/sdschooldata/internal/contract"
	"github.com/almartin82/sdschooldata/internal/symbol"
)

func newLocateCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "locate NAME",
		Short: "Print where a symbol is defined",
		Long: `locate walks a source tree and prints path:line:column for every top-level
function, method, type, var or const with the given name. vendor, testdata
and hidden directories are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locations, err := symbol.NewASTResolver(root).FindSymbol(args[0])
			if err != nil {
				return err
			}
			if len(locations) == 0 {
				return &exitError{code: exitFailed, err: fmt.Errorf("symbol %q not found under %s", args[0], root)}
			}
			for _, loc := range locations {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d\n", loc.FilePath, loc.Line, loc.Character)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "directory to search")
	return cmd
}

func newSymbolsCmd() *cobra.Command {
	var asContract bool

	cmd := &cobra.Command{
		Use:   "symbols DIR",
		Short: "List the exported surface of a package directory",
		Long: `symbols parses one package directory and lists its exported top-level
declarations. With --contract it prints a contract skeleton instead, with
functions as kind function and everything else as kind value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			decls, err := symbol.NewASTResolver(dir).Describe(dir)
			if err != nil {
				return &exitError{code: exitFailed, err: err}
			}

			var exported []symbol.Declaration
			for _, name := range symbol.Names(decls) {
				if token.IsExported(name) {
					exported = append(exported, decls[name])
				}
			}

			if asContract {
				return writeContractSkeleton(cmd, dir, exported)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"Name", "Decl", "Type", "Location"})
			for _, d := range exported {
				t.AppendRow(table.Row{d.Name, d.Kind, d.Type, fmt.Sprintf("%s:%d", d.Location.FilePath, d.Location.Line)})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&asContract, "contract", false, "print a YAML contract skeleton")
	return cmd
}

func writeContractSkeleton(cmd *cobra.Command, dir string, decls []symbol.Declaration) error {
	c := contract.Contract{Module: dir, Loader: contract.LoaderPackages}
	for _, d := range decls {
		if d.Kind == symbol.DeclType {
			continue
		}
		kind := "value"
		if d.Kind == symbol.DeclFunc {
			kind = "function"
		}
		c.Symbols = append(c.Symbols, contract.Symbol{Name: d.Name, Kind: kind})
	}

	out, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
