package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/wordmap/wordmap/internal/api"
)

type deleterFunc func(ctx context.Context, id int) error

func (f deleterFunc) DeleteDeck(ctx context.Context, id int) error { return f(ctx, id) }

func TestDeleteDeck(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantOut string
		wantErr string
	}{
		{"deleted", nil, "Deleted deck 4\n", ""},
		{"already gone", &api.StatusError{Method: "DELETE", Path: "/api/flashcards/4", StatusCode: 404}, "Deck 4 was already deleted\n", ""},
		{"server error", &api.StatusError{Method: "DELETE", Path: "/api/flashcards/4", StatusCode: 500}, "", "delete deck 4: DELETE /api/flashcards/4: 500 Internal Server Error"},
		{"transport", errors.New("refused"), "", "delete deck 4: refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := deleteDeck(context.Background(), deleterFunc(func(_ context.Context, id int) error {
				if id != 4 {
					t.Errorf("deleted id %d, want 4", id)
				}
				return tt.err
			}), 4, &out)

			if tt.wantErr == "" && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != "" && (err == nil || err.Error() != tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
			if out.String() != tt.wantOut {
				t.Errorf("out = %q, want %q", out.String(), tt.wantOut)
			}
		})
	}
}
