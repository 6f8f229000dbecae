package command

import (
	"context"
	"testing"

	"github.com/hammamikhairi/recipebox/internal/logger"
)

func TestParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewParser(log)
	ctx := context.Background()

	tests := []struct {
		input      string
		wantType   Type
		wantTarget string
		wantArgs   string
	}{
		// List
		{"list", List, "", ""},
		{"LS", List, "", ""},

		// Show
		{"3", Show, "3", ""},
		{"show 2", Show, "2", ""},
		{"view 5b7c", Show, "5b7c", ""},

		// Add / edit
		{"add name=Tea; ingredients=leaves", Add, "", "name=Tea; ingredients=leaves"},
		{"add", Add, "", ""},
		{"edit 1 name=Green Tea", Edit, "1", "name=Green Tea"},
		{"edit 1", Edit, "1", ""},

		// Delete / favorite
		{"delete 4", Delete, "4", ""},
		{"rm 4", Delete, "4", ""},
		{"fav 2", Favorite, "2", ""},
		{"favourite 2", Favorite, "2", ""},

		// Criteria
		{"filter Main Course", Filter, "", "Main Course"},
		{"filter", Filter, "", ""},
		{"search milk", Search, "", "milk"},
		{"search", Search, "", ""},
		{"sort favorite", Sort, "", "favorite"},

		// Shopping list
		{"shop 1", Shop, "1", ""},
		{"cart", Cart, "", ""},
		{"shopping list", Cart, "", ""},
		{"clear cart", ClearCart, "", ""},
		{"clear-cart", ClearCart, "", ""},

		// Share / files
		{"share 1", Share, "1", ""},
		{"export out/recipes.yaml", Export, "", "out/recipes.yaml"},
		{"import recipes.yaml", Import, "", "recipes.yaml"},

		// Help / quit
		{"help", Help, "", ""},
		{"?", Help, "", ""},
		{"quit", Quit, "", ""},
		{"q", Quit, "", ""},

		// Unknown
		{"flambé the cat", Unknown, "", "flambé the cat"},
		{"delete", Unknown, "", "delete"},
		{"", Unknown, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := parser.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd.Type != tt.wantType {
				t.Errorf("input=%q: got type %s, want %s", tt.input, cmd.Type, tt.wantType)
			}
			if cmd.Target != tt.wantTarget {
				t.Errorf("input=%q: got target %q, want %q", tt.input, cmd.Target, tt.wantTarget)
			}
			if cmd.Args != tt.wantArgs {
				t.Errorf("input=%q: got args %q, want %q", tt.input, cmd.Args, tt.wantArgs)
			}
		})
	}
}
