package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wordmap/wordmap/internal/api"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List saved decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client, err := newClient(cfg, zap.NewNop())
		if err != nil {
			return err
		}

		decks, err := client.ListDecks(cmd.Context())
		if err != nil {
			return fmt.Errorf("list decks: %w", err)
		}

		fmt.Printf("%6s  %-30s  %5s  %s\n", "ID", "Name", "Words", "First words")
		fmt.Println(strings.Repeat("─", 80))
		for _, d := range decks {
			name := d.Name
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			var labels []string
			for i, w := range d.Words {
				if i == 3 {
					labels = append(labels, "...")
					break
				}
				labels = append(labels, w.Label)
			}
			fmt.Printf("%6d  %-30s  %5d  %s\n", d.ID, name, len(d.Words), strings.Join(labels, ", "))
		}

		fmt.Printf("\n%d decks\n", len(decks))
		return nil
	},
}

var decksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid deck id %q", args[0])
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client, err := newClient(cfg, zap.NewNop())
		if err != nil {
			return err
		}
		return deleteDeck(cmd.Context(), client, id, cmd.OutOrStdout())
	},
}

type deckDeleter interface {
	DeleteDeck(ctx context.Context, id int) error
}

// deleteDeck treats a deck that is already gone as deleted.
func deleteDeck(ctx context.Context, d deckDeleter, id int, out io.Writer) error {
	err := d.DeleteDeck(ctx, id)
	switch {
	case api.IsNotFound(err):
		fmt.Fprintf(out, "Deck %d was already deleted\n", id)
		return nil
	case err != nil:
		return fmt.Errorf("delete deck %d: %w", id, err)
	}
	fmt.Fprintf(out, "Deleted deck %d\n", id)
	return nil
}

func init() {
	decksCmd.AddCommand(decksDeleteCmd)
}
