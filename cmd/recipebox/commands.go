package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipebox/internal/command"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/export"
	"github.com/hammamikhairi/recipebox/internal/store"
)

func newListCmd(d *deps) *cobra.Command {
	var category, search, sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the recipes matching a category and search text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key := d.cfg.SortKey()
			if sortBy != "" {
				k, ok := domain.ParseSortKey(strings.ToLower(sortBy))
				if !ok {
					return fmt.Errorf("unknown sort key %q", sortBy)
				}
				key = k
			}

			d.store.SetFilter(resolveFilter(category))
			d.store.SetSearchTerm(search)
			printTable(cmd.OutOrStdout(), d.views.Visible(d.store.State(), key))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", domain.FilterAll, "category to show, or all")
	cmd.Flags().StringVar(&search, "search", "", "text to match in names and ingredients")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort key: name, category or favorite")
	return cmd
}

func newAddCmd(d *deps) *cobra.Command {
	var (
		name, ingredients, instructions, category, image string
		prepTime, servings                               int
		favorite                                         bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields := map[string]string{
				command.FieldName:         name,
				command.FieldIngredients:  ingredients,
				command.FieldInstructions: instructions,
				command.FieldImageURL:     image,
			}
			flags := cmd.Flags()
			if flags.Changed("category") {
				fields[command.FieldCategory] = category
			}
			if flags.Changed("prep-time") {
				fields[command.FieldPrepTime] = strconv.Itoa(prepTime)
			}
			if flags.Changed("servings") {
				fields[command.FieldServings] = strconv.Itoa(servings)
			}
			if flags.Changed("favorite") {
				fields[command.FieldFavorite] = strconv.FormatBool(favorite)
			}

			draft, err := command.DraftFromFields(fields, nil)
			if err != nil {
				return err
			}
			req, err := store.NewCreateRequest(draft)
			if err != nil {
				return err
			}
			r, err := d.store.Create(cmd.Context(), req)
			if err := warnPersistence(cmd, err); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "recipe name")
	f.StringVar(&ingredients, "ingredients", "", "comma-separated ingredients")
	f.StringVar(&instructions, "instructions", "", "preparation instructions")
	f.StringVar(&category, "category", string(domain.CategoryMainCourse), "Dessert, Main Course, Snack, Appetizer or Beverage")
	f.StringVar(&image, "image", "", "image URL")
	f.IntVar(&prepTime, "prep-time", 0, "preparation time in minutes")
	f.IntVar(&servings, "servings", 0, "number of servings")
	f.BoolVar(&favorite, "favorite", false, "mark as favorite")
	return cmd
}

func newDeleteCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a recipe (no error if it does not exist)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return warnPersistence(cmd, d.store.Delete(cmd.Context(), args[0]))
		},
	}
}

func newFavoriteCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "favorite ID",
		Aliases: []string{"fav"},
		Short:   "Toggle a recipe's favorite flag (no error if it does not exist)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok, err := d.store.ToggleFavorite(cmd.Context(), args[0])
			if err := warnPersistence(cmd, err); err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "no recipe %s, nothing changed\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s favorite=%t\n", r.Name, r.IsFavorite)
			return nil
		},
	}
}

func newExportCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write every recipe to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := exportFile(args[0], d.store.Recipes())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d recipes to %s\n", n, args[0])
			return nil
		},
	}
}

func newImportCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Add every valid recipe from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := importFile(cmd.Context(), args[0], d.store)
			if err := warnPersistence(cmd, err); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range res.Skipped {
				fmt.Fprintf(out, "skipped #%d %q: %v\n", s.Index+1, s.Name, s.Err)
			}
			fmt.Fprintf(out, "imported %d recipes\n", len(res.Imported))
			return nil
		},
	}
}

// warnPersistence turns a *domain.PersistenceError into a warning: the
// change was applied in memory, so the command still succeeds.
func warnPersistence(cmd *cobra.Command, err error) error {
	var perr *domain.PersistenceError
	if errors.As(err, &perr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: change applied but not saved: %v\n", perr.Err)
		return nil
	}
	return err
}

// resolveFilter maps user input to a filter value: empty or "all" in any
// case selects everything, a category name in any case selects that
// category, anything else is kept as typed and matches nothing.
func resolveFilter(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, domain.FilterAll) {
		return domain.FilterAll
	}
	if c, ok := domain.ParseCategory(input); ok {
		return string(c)
	}
	return input
}

func printTable(w io.Writer, recipes []domain.Recipe) {
	for _, r := range recipes {
		star := " "
		if r.IsFavorite {
			star = "*"
		}
		fmt.Fprintf(w, "%s %-36s  %-28s  %s\n", star, r.ID, r.Name, r.Category)
	}
}

func exportFile(path string, recipes []domain.Recipe) (int, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating export file: %w", err)
	}
	if err := export.WriteYAML(f, recipes); err != nil {
		_ = f.Close()
		return 0, err
	}
	return len(recipes), f.Close()
}

func importFile(ctx context.Context, path string, c export.Creator) (export.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return export.Result{}, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	recipes, err := export.ReadYAML(f)
	if err != nil {
		return export.Result{}, err
	}
	return export.Import(ctx, c, recipes)
}
