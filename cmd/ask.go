package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var askChartOut string

var askCmd = &cobra.Command{
	Use:   "ask <file> <question>",
	Short: "Ask a single question about a data file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, question := args[0], args[1]

		s, err := newSession()
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read data file: %w", err)
		}
		ds, err := s.LoadDataset(string(raw))
		if err != nil {
			return err
		}
		logger.Debug("dataset ready", "file", path, "columns", len(ds.Columns), "rows", len(ds.Rows))

		msg, err := s.Ask(cmd.Context(), question)
		if err != nil {
			return err
		}
		fmt.Println(msg.Text)

		if msg.ChartSVG != nil {
			out := askChartOut
			if out == "" {
				out = chartPathFor(path, 0)
			}
			if err := os.WriteFile(out, []byte(*msg.ChartSVG), 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Chart written to %s\n", out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askChartOut, "chart-out", "o", "", "write the chart SVG to this path (default <file>.chart.svg)")
}

// chartPathFor derives a chart filename next to the data file. n numbers the
// chart within a conversation; 0 means a single unnumbered chart.
func chartPathFor(dataPath string, n int) string {
	base := strings.TrimSuffix(dataPath, ".csv")
	if n <= 0 {
		return base + ".chart.svg"
	}
	return fmt.Sprintf("%s.chart%d.svg", base, n)
}
