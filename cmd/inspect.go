package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tabletalk/tabletalk/internal/dataset"
)

var inspectRows int

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Preview a data file without contacting the analysis service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read data file: %w", err)
		}
		ds, err := dataset.Parse(string(raw))
		if err != nil {
			return err
		}
		if len(ds.Columns) == 0 {
			fmt.Println("File contains no data")
			return nil
		}
		fmt.Printf("%s: %d columns, %d rows\n\n", args[0], len(ds.Columns), len(ds.Rows))

		preview := tablewriter.NewWriter(cmd.OutOrStdout())
		preview.SetHeader(ds.Columns)
		for _, rec := range ds.Head(inspectRows) {
			preview.Append(rec)
		}
		preview.Render()

		fmt.Println()
		profile := tablewriter.NewWriter(cmd.OutOrStdout())
		profile.SetHeader([]string{"column", "numeric", "text", "empty"})
		for _, p := range ds.Profile(0) {
			profile.Append([]string{
				p.Name,
				strconv.Itoa(p.Numeric),
				strconv.Itoa(p.Text),
				strconv.Itoa(p.Empty),
			})
		}
		profile.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVarP(&inspectRows, "rows", "n", 10, "number of rows to preview")
}
