package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/command"
	"github.com/hammamikhairi/recipebox/internal/display"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/share"
	"github.com/hammamikhairi/recipebox/internal/shopping"
	"github.com/hammamikhairi/recipebox/internal/store"
	"github.com/hammamikhairi/recipebox/internal/views"
)

// output is the part of display.UI the REPL writes through.
type output interface {
	Println(a ...interface{})
	PrintChat(text string)
	PrintHeading(text string)
	PrintListItem(n int, name, category string, favorite bool)
	PrintBody(text string)
	PrintHint(text string)
	PrintUrgent(text string)
}

// Compile-time interface checks.
var (
	_ output               = (*display.UI)(nil)
	_ command.Sink         = (*display.UI)(nil)
	_ display.StatusSource = (*cliApp)(nil)
)

func runREPL(ctx context.Context, d *deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := &cliApp{
		store:   d.store,
		views:   d.views,
		parser:  command.NewParser(d.log.Named("command")),
		cart:    shopping.New(),
		sharer:  share.NewSharer(d.cfg.ShareBaseURL, d.log.Named("share")),
		sortKey: d.cfg.SortKey(),
		log:     d.log,
	}
	ui := display.NewUI(app)
	app.out = ui
	app.notifier = command.NewCLINotifier(d.log.Named("notify"), ui)
	app.quit = ui.Quit

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx, ui.InputChan())
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	err := ui.Run()
	if err != nil {
		d.log.Error("display: %v", err)
	}
	return err
}

type cliApp struct {
	store    *store.Store
	views    *views.Engine
	parser   *command.Parser
	notifier domain.Notifier
	cart     *shopping.List
	sharer   *share.Sharer
	out      output
	log      *logger.Logger
	quit     func()

	mu      sync.RWMutex // guards sortKey, read by the status bar
	sortKey domain.SortKey

	lastView []string // ids in the order of the last listing
}

// Status reports what the status bar shows. Safe for concurrent use.
func (a *cliApp) Status() display.Status {
	st := a.store.State()
	key := a.currentSort()
	return display.Status{
		Filter:  st.Filter,
		Search:  st.SearchTerm,
		Sort:    string(key),
		Visible: len(a.views.Filtered(st)),
		Total:   len(st.Recipes),
		Cart:    a.cart.Len(),
	}
}

func (a *cliApp) currentSort() domain.SortKey {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sortKey
}

func (a *cliApp) setSort(k domain.SortKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sortKey = k
}

func (a *cliApp) run(ctx context.Context, input <-chan string) {
	a.out.PrintChat("Welcome to RecipeBox.")
	a.showRecipes()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-input:
			if !ok {
				return
			}
			if !a.handle(ctx, line) {
				return
			}
		}
	}
}

// handle runs one line of input. It returns false when the user quits.
func (a *cliApp) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	cmd, err := a.parser.Parse(ctx, line)
	if err != nil {
		a.log.Error("parsing input: %v", err)
		return true
	}
	a.log.Debug("command: %s (target=%q args=%q)", cmd.Type, cmd.Target, cmd.Args)

	switch cmd.Type {
	case command.List:
		a.showRecipes()
	case command.Show:
		a.showRecipe(cmd.Target)
	case command.Add:
		a.addRecipe(ctx, cmd.Args)
	case command.Edit:
		a.editRecipe(ctx, cmd.Target, cmd.Args)
	case command.Delete:
		a.deleteRecipe(ctx, cmd.Target)
	case command.Favorite:
		a.toggleFavorite(ctx, cmd.Target)
	case command.Filter:
		a.store.SetFilter(resolveFilter(cmd.Args))
		a.showRecipes()
	case command.Search:
		a.store.SetSearchTerm(cmd.Args)
		a.showRecipes()
	case command.Sort:
		a.setSortKey(cmd.Args)
	case command.Shop:
		a.addToCart(ctx, cmd.Target)
	case command.Cart:
		a.showCart()
	case command.ClearCart:
		a.cart.Clear()
		a.notice(ctx, "Shopping list cleared.")
	case command.Share:
		a.shareRecipe(ctx, cmd.Target)
	case command.Export:
		a.exportRecipes(ctx, cmd.Args)
	case command.Import:
		a.importRecipes(ctx, cmd.Args)
	case command.Help:
		a.showHelp()
	case command.Quit:
		a.out.PrintChat("Bye!")
		if a.quit != nil {
			a.quit()
		}
		return false
	default:
		a.out.PrintHint(fmt.Sprintf("I don't know %q. Type 'help' for commands.", cmd.Args))
	}
	return true
}

// resolve finds a recipe by its number in the last listing or by id.
func (a *cliApp) resolve(target string) (domain.Recipe, bool) {
	if n, err := strconv.Atoi(target); err == nil && n >= 1 && n <= len(a.lastView) {
		if r, ok := a.store.Get(a.lastView[n-1]); ok {
			return r, true
		}
	}
	if r, ok := a.store.Get(target); ok {
		return r, true
	}
	a.out.PrintUrgent(fmt.Sprintf("No recipe %q. Use a number from 'list' or a recipe id.", target))
	return domain.Recipe{}, false
}

// report prints err. It returns true when the operation took effect,
// which includes a persistence failure: the change is kept in memory.
func (a *cliApp) report(ctx context.Context, err error) bool {
	if err == nil {
		return true
	}

	var (
		perr *domain.PersistenceError
		verr *domain.ValidationError
		nerr *domain.NotFoundError
	)
	switch {
	case errors.As(err, &perr):
		_ = a.notifier.NotifyUrgent(ctx, fmt.Sprintf("Warning: change kept but not saved (%v).", perr.Err))
		return true
	case errors.As(err, &verr):
		a.out.PrintUrgent("Please fix these fields:")
		for _, f := range verr.Fields {
			a.out.PrintUrgent("  " + f.String())
		}
	case errors.As(err, &nerr):
		a.out.PrintUrgent(fmt.Sprintf("No recipe with id %s.", nerr.ID))
	default:
		a.out.PrintUrgent(fmt.Sprintf("Error: %v", err))
	}
	return false
}

func (a *cliApp) showRecipes() {
	st := a.store.State()
	list := a.views.Visible(st, a.currentSort())

	a.lastView = a.lastView[:0]
	for _, r := range list {
		a.lastView = append(a.lastView, r.ID)
	}

	if len(list) == 0 {
		if len(st.Recipes) == 0 {
			a.out.PrintChat("No recipes yet. Add one with: add name=...; ingredients=a, b; instructions=...")
		} else {
			a.out.PrintChat("No recipes match. Try 'filter all' or 'search' to clear.")
		}
		return
	}

	a.out.PrintHeading(fmt.Sprintf("Recipes (%d of %d)", len(list), len(st.Recipes)))
	for i, r := range list {
		a.out.PrintListItem(i+1, r.Name, string(r.Category), r.IsFavorite)
	}
}

func (a *cliApp) showRecipe(target string) {
	r, ok := a.resolve(target)
	if !ok {
		return
	}

	title := r.Name
	if r.IsFavorite {
		title += " ★"
	}
	a.out.PrintHeading(fmt.Sprintf("=== %s ===", title))
	a.out.PrintHint(fmt.Sprintf("Category: %s   id: %s", r.Category, r.ID))

	var meta []string
	if r.PrepTime != nil {
		meta = append(meta, fmt.Sprintf("Prep: %d min", *r.PrepTime))
	}
	if r.Servings != nil {
		meta = append(meta, fmt.Sprintf("Serves: %d", *r.Servings))
	}
	if len(meta) > 0 {
		a.out.PrintHint(strings.Join(meta, "   "))
	}
	if r.ImageURL != "" {
		a.out.PrintHint("Image: " + r.ImageURL)
	}

	a.out.Println("")
	a.out.PrintHeading("Ingredients:")
	for _, ing := range r.Ingredients {
		a.out.PrintBody("  - " + ing)
	}
	a.out.Println("")
	a.out.PrintHeading("Instructions:")
	a.out.PrintBody(r.Instructions)
}

func (a *cliApp) addRecipe(ctx context.Context, args string) {
	if strings.TrimSpace(args) == "" {
		a.out.PrintHint("Usage: add name=...; ingredients=a, b; instructions=...; category=Dessert; prep=10; servings=2")
		return
	}

	fields, err := command.ParseFields(args)
	if err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	draft, err := command.DraftFromFields(fields, nil)
	if !a.report(ctx, err) {
		return
	}
	req, err := store.NewCreateRequest(draft)
	if !a.report(ctx, err) {
		return
	}

	r, err := a.store.Create(ctx, req)
	if !a.report(ctx, err) {
		return
	}
	a.notice(ctx, fmt.Sprintf("Added %s.", r.Name))
}

func (a *cliApp) editRecipe(ctx context.Context, target, args string) {
	r, ok := a.resolve(target)
	if !ok {
		return
	}

	// Without fields, show the current values as an editable line.
	if strings.TrimSpace(args) == "" {
		a.out.PrintHint("Current values (change what you need and send it back):")
		a.out.PrintBody(editTemplate(target, r))
		return
	}

	fields, err := command.ParseFields(args)
	if err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	draft, err := command.DraftFromFields(fields, &r)
	if !a.report(ctx, err) {
		return
	}
	req, err := store.NewUpdateRequest(r.ID, draft)
	if !a.report(ctx, err) {
		return
	}

	updated, err := a.store.Update(ctx, req)
	if !a.report(ctx, err) {
		return
	}
	a.notice(ctx, fmt.Sprintf("Updated %s.", updated.Name))
}

func (a *cliApp) deleteRecipe(ctx context.Context, target string) {
	r, ok := a.resolve(target)
	if !ok {
		return
	}
	if a.report(ctx, a.store.Delete(ctx, r.ID)) {
		a.notice(ctx, fmt.Sprintf("Deleted %s.", r.Name))
	}
}

func (a *cliApp) toggleFavorite(ctx context.Context, target string) {
	r, ok := a.resolve(target)
	if !ok {
		return
	}
	updated, found, err := a.store.ToggleFavorite(ctx, r.ID)
	if !a.report(ctx, err) || !found {
		return
	}
	if updated.IsFavorite {
		a.notice(ctx, fmt.Sprintf("★ %s is a favorite.", updated.Name))
	} else {
		a.notice(ctx, fmt.Sprintf("%s is no longer a favorite.", updated.Name))
	}
}

// notice reports a successful command through the notifier.
func (a *cliApp) notice(ctx context.Context, message string) {
	if err := a.notifier.Notify(ctx, message); err != nil {
		a.log.Debug("notice dropped: %v", err)
	}
}

func (a *cliApp) setSortKey(name string) {
	k, ok := domain.ParseSortKey(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		a.out.PrintUrgent(fmt.Sprintf("Unknown sort %q. Use name, category or favorite.", name))
		return
	}
	a.setSort(k)
	a.showRecipes()
}

func (a *cliApp) addToCart(ctx context.Context, target string) {
	r, ok := a.resolve(target)
	if !ok {
		return
	}
	n := a.cart.Add(r.Ingredients)
	a.notice(ctx, fmt.Sprintf("Added %d new item(s) from %s to the shopping list.", n, r.Name))
	a.showCart()
}

func (a *cliApp) showCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		a.out.PrintChat("Your shopping list is empty. Use 'shop N' to add a recipe's ingredients.")
		return
	}
	a.out.PrintHeading(fmt.Sprintf("Shopping list (%d)", len(items)))
	for _, item := range items {
		a.out.PrintBody("  [ ] " + item)
	}
}

func (a *cliApp) shareRecipe(ctx context.Context, target string) {
	r, ok := a.resolve(target)
	if !ok {
		return
	}
	link, err := a.sharer.Share(r.ID)
	if errors.Is(err, share.ErrClipboardUnavailable) {
		a.out.PrintHint("Clipboard unavailable, copy the link yourself:")
		a.out.PrintBody(link)
		return
	}
	a.notice(ctx, "Link copied to clipboard: " + link)
}

func (a *cliApp) exportRecipes(ctx context.Context, path string) {
	n, err := exportFile(path, a.store.Recipes())
	if err != nil {
		a.out.PrintUrgent(fmt.Sprintf("Export failed: %v", err))
		return
	}
	a.notice(ctx, fmt.Sprintf("Exported %d recipes to %s.", n, path))
}

func (a *cliApp) importRecipes(ctx context.Context, path string) {
	res, err := importFile(ctx, path, a.store)
	if !a.report(ctx, err) && len(res.Imported) == 0 {
		return
	}
	for _, s := range res.Skipped {
		a.out.PrintHint(fmt.Sprintf("Skipped #%d %q: %v", s.Index+1, s.Name, s.Err))
	}
	a.notice(ctx, fmt.Sprintf("Imported %d recipes.", len(res.Imported)))
}

func (a *cliApp) showHelp() {
	a.out.PrintHeading("Commands:")
	a.out.PrintBody("  list / ls                 Show recipes (numbered)")
	a.out.PrintBody("  3 / show 3                Show recipe 3 from the last list")
	a.out.PrintBody("  add k=v; k=v ...          Add a recipe")
	a.out.PrintBody("  edit 3 [k=v; ...]         Edit recipe 3 (no fields: show current values)")
	a.out.PrintBody("  delete 3 / rm 3           Delete recipe 3")
	a.out.PrintBody("  fav 3                     Toggle favorite")
	a.out.PrintBody("  filter Dessert | all      Filter by category")
	a.out.PrintBody("  search text               Search names and ingredients (empty clears)")
	a.out.PrintBody("  sort name|category|favorite")
	a.out.PrintBody("  shop 3 / cart / clear cart  Shopping list")
	a.out.PrintBody("  share 3                   Copy a link to recipe 3")
	a.out.PrintBody("  export FILE / import FILE YAML backup")
	a.out.PrintBody("  help / quit")
	a.out.Println("")
	a.out.PrintHeading("Fields:")
	a.out.PrintBody("  name, ingredients (comma separated), instructions, category,")
	a.out.PrintBody("  image, prep (minutes), servings, favorite (true/false)")
	a.out.PrintHint("Fields are separated by ';'. Categories: " + categoryNames())
}

func editTemplate(target string, r domain.Recipe) string {
	parts := []string{
		"name=" + r.Name,
		"ingredients=" + strings.Join(r.Ingredients, ", "),
		"instructions=" + r.Instructions,
		"category=" + string(r.Category),
	}
	if r.ImageURL != "" {
		parts = append(parts, "image="+r.ImageURL)
	}
	if r.PrepTime != nil {
		parts = append(parts, fmt.Sprintf("prep=%d", *r.PrepTime))
	}
	if r.Servings != nil {
		parts = append(parts, fmt.Sprintf("servings=%d", *r.Servings))
	}
	return "edit " + target + " " + strings.Join(parts, "; ")
}

func categoryNames() string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
