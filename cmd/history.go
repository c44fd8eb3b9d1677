package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tripletmatch/internal/storage"
)

var (
	historyLimit  int
	historyOffset int
	historyGroups bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past match runs",
	Long: `Display recorded match runs, newest first.

Each run shows when it ran, the folders involved and how many source images
were matched or skipped.

Example:
  tripletmatch history              # Show the last 10 runs
  tripletmatch history -n 0         # Show all runs
  tripletmatch history --groups     # Include each run's matched triples
  tripletmatch history --offset 10  # Runs 11-20`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Limit number of runs to display (0 = all)")
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "Skip first N runs (for pagination)")
	historyCmd.Flags().BoolVar(&historyGroups, "groups", false, "Show matched triples for each run")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.NewStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No match runs recorded.")
		fmt.Println("Run 'tripletmatch match <source> <folder1> <folder2> <dest>' first.")
		return nil
	}

	totalRuns := len(runs)
	startIdx := historyOffset
	if startIdx > len(runs) {
		startIdx = len(runs)
	}
	runs = runs[startIdx:]
	if historyLimit > 0 && historyLimit < len(runs) {
		runs = runs[:historyLimit]
	}

	if len(runs) == 0 {
		fmt.Printf("No runs in range (offset %d exceeds total %d)\n", historyOffset, totalRuns)
		return nil
	}

	fmt.Printf("%-6s  %-19s  %-8s  %-8s  %s\n", "Run", "Matched at", "Matches", "Skipped", "Source folder")
	fmt.Println(strings.Repeat("-", 70))

	for _, run := range runs {
		fmt.Printf("#%-5d  %-19s  %-8d  %-8d  %s\n",
			run.ID,
			run.MatchedAt.Format("2006-01-02 15:04:05"),
			run.TotalMatches,
			run.TotalSkipped,
			run.SourceDir)

		if historyGroups {
			groups, err := store.GroupsForRun(run.ID)
			if err != nil {
				return fmt.Errorf("failed to load groups for run %d: %w", run.ID, err)
			}
			for _, g := range groups {
				fmt.Printf("        [%04d] %s  %s\n", g.Index, g.Identifier, g.SourcePath)
			}
		}
	}

	endIdx := startIdx + len(runs)
	fmt.Printf("\nShowing runs %d-%d of %d\n", startIdx+1, endIdx, totalRuns)
	if endIdx < totalRuns {
		limitArg := ""
		if historyLimit > 0 {
			limitArg = fmt.Sprintf(" -n %d", historyLimit)
		}
		fmt.Printf("Next page: tripletmatch history%s --offset %d\n", limitArg, endIdx)
	}

	return nil
}
