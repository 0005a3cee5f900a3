package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Beastly713/pensieve/pkg/format"
	"github.com/Beastly713/pensieve/pkg/reconstruct"
	"github.com/Beastly713/pensieve/pkg/search"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	outputPath string
	workers    int
)

var recoverCmd = &cobra.Command{
	Use:   "recover [file...]",
	Short: "Recover the secret from one or more share-bundle files",
	Long: `Recover reads share-bundle JSON files (optionally gzip-compressed),
finds the largest set of mutually consistent shares, and prints the
reconstructed secret together with the shares that disagree with it.

Example:
  pensieve recover testcase1.json testcase2.json

Use "-" to read a single bundle from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputPath != "" && len(args) > 1 {
			return fmt.Errorf("--output expects exactly one input bundle, got %d", len(args))
		}

		for _, path := range args {
			// 1. Open the bundle
			var in io.Reader
			if path == "-" {
				in = cmd.InOrStdin()
			} else {
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}
				defer file.Close()
				in = file
			}

			// 2. Parse
			bundle, err := format.ParseBundle(in)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			// 3. Reconstruct
			res, err := reconstruct.Reconstruct(bundle, search.Options{
				Workers: workers,
				Logger:  logger,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			// 4. Emit
			if outputPath != "" {
				out, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outputPath, err)
				}
				if err := format.WriteResult(out, res); err != nil {
					out.Close()
					return err
				}
				if err := out.Close(); err != nil {
					return fmt.Errorf("failed to write %s: %w", outputPath, err)
				}
				continue
			}

			if jsonOutput {
				if err := format.WriteResult(cmd.OutOrStdout(), res); err != nil {
					return err
				}
				continue
			}

			printSummary(cmd.OutOrStdout(), path, res)
		}
		return nil
	},
}

func printSummary(w io.Writer, path string, res *format.Result) {
	fmt.Fprintf(w, "%s: secret = %s\n", path, res.Secret)
	if len(res.WrongShares) == 0 {
		fmt.Fprintln(w, "All shares are consistent.")
		return
	}
	fmt.Fprintf(w, "%d share(s) disagree with the recovered polynomial:\n", len(res.WrongShares))
	for _, ws := range res.WrongShares {
		fmt.Fprintf(w, "  x=%s: given %s, expected %s\n", ws.Index, ws.Given, ws.Expected)
	}
}

func init() {
	rootCmd.AddCommand(recoverCmd)

	recoverCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result object as JSON")
	recoverCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result JSON to a file (single bundle only)")
	recoverCmd.Flags().IntVarP(&workers, "workers", "w", 1, "Score candidate subsets on this many workers")
}
