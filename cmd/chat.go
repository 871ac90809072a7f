package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <file>",
	Short: "Start an interactive conversation about a data file",
	Long:  `Loads a data file and answers questions in a loop. Each answer may carry a chart, written next to the data file as <file>.chartN.svg. Type "exit" or "quit" to leave.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

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
		fmt.Printf("Loaded %s: %d columns, %d rows. Ask away.\n", path, len(ds.Columns), len(ds.Rows))

		charts := 0
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				break
			}

			msg, err := s.Ask(cmd.Context(), line)
			if err != nil {
				// Failed exchanges are recoverable; report and keep going.
				fmt.Fprintln(os.Stderr, "✗", err)
				continue
			}
			fmt.Println(msg.Text)
			if msg.ChartSVG != nil {
				charts++
				out := chartPathFor(path, charts)
				if err := os.WriteFile(out, []byte(*msg.ChartSVG), 0o644); err != nil {
					fmt.Fprintln(os.Stderr, "✗ write chart:", err)
					continue
				}
				fmt.Printf("Chart written to %s\n", out)
			}
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
