package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordmap/wordmap/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		results, err := st.QuizResults().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No quizzes yet.")
			return nil
		}

		fmt.Printf("%-17s  %-30s  %7s  %5s\n", "Finished", "Deck", "Score", "Pct")
		fmt.Println(strings.Repeat("─", 66))
		var correct, total int
		for _, r := range results {
			name := r.DeckName
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			fmt.Printf("%-17s  %-30s  %3d/%-3d  %4d%%\n",
				r.FinishedAt.Local().Format("2006-01-02 15:04"), name, r.Correct, r.Total, r.Percentage)
			correct += r.Correct
			total += r.Total
		}

		overall := 0
		if total > 0 {
			overall = correct * 100 / total
		}
		fmt.Printf("\n%d quizzes, %d / %d correct (%d%%)\n", len(results), correct, total, overall)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 20, "Number of results to show (0 for all)")
}
