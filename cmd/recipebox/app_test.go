package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hammamikhairi/recipebox/internal/command"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/share"
	"github.com/hammamikhairi/recipebox/internal/shopping"
	"github.com/hammamikhairi/recipebox/internal/storage"
	"github.com/hammamikhairi/recipebox/internal/store"
	"github.com/hammamikhairi/recipebox/internal/views"
)

// recorder collects everything the app prints.
type recorder struct {
	lines  []string
	urgent []string
}

func (r *recorder) Println(a ...interface{}) { r.lines = append(r.lines, fmt.Sprint(a...)) }
func (r *recorder) PrintChat(text string) { r.lines = append(r.lines, text) }
func (r *recorder) PrintHeading(text string) { r.lines = append(r.lines, text) }
func (r *recorder) PrintBody(text string) { r.lines = append(r.lines, text) }
func (r *recorder) PrintHint(text string) { r.lines = append(r.lines, text) }
func (r *recorder) PrintUrgent(text string) { r.urgent = append(r.urgent, text) }
func (r *recorder) PrintListItem(n int, name, category string, favorite bool) {
	r.lines = append(r.lines, fmt.Sprintf("%d. %s (%s) fav=%t", n, name, category, favorite))
}

func (r *recorder) contains(s string) bool {
	for _, l := range r.lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

func (r *recorder) reset() { r.lines, r.urgent = nil, nil }

// brokenSnapshots starts empty and fails every save.
type brokenSnapshots struct{}

func (brokenSnapshots) Load(context.Context) ([]byte, error) { return nil, domain.ErrNoSnapshot }
func (brokenSnapshots) Save(context.Context, []byte) error { return errors.New("read-only filesystem") }

func newTestApp(t *testing.T, snaps domain.SnapshotStore) (*cliApp, *recorder, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	ctx := context.Background()
	if snaps == nil {
		snaps = storage.NewMemoryStore(log)
	}
	rec := &recorder{}
	app := &cliApp{
		store:  store.New(ctx, snaps, log),
		views:  views.NewEngine(views.NewSorter("en"), log),
		parser: command.NewParser(log),
		cart:   shopping.New(),
		sharer: share.NewSharer("https://recipes.example", log,
			share.WithClipboard(func(string) error { return nil })),
		sortKey: domain.SortByName,
		out:     rec,
		log:     log,
	}
	app.notifier = command.NewCLINotifier(log, rec)
	return app, rec, ctx
}

func TestAppAddListShow(t *testing.T) {
	app, rec, ctx := newTestApp(t, nil)

	app.handle(ctx, "add name=Waffles; ingredients=flour, milk; instructions=Cook.; category=dessert")
	app.handle(ctx, "add name=Lemonade; ingredients=lemon, water; instructions=Stir.; category=Beverage; servings=4")
	if len(rec.urgent) != 0 {
		t.Fatalf("unexpected errors: %v", rec.urgent)
	}

	rec.reset()
	app.handle(ctx, "list")
	if len(app.lastView) != 2 {
		t.Fatalf("expected 2 listed, got %d", len(app.lastView))
	}
	if !rec.contains("1. Lemonade (Beverage)") || !rec.contains("2. Waffles (Dessert)") {
		t.Fatalf("unexpected listing: %v", rec.lines)
	}

	rec.reset()
	app.handle(ctx, "2")
	if !rec.contains("=== Waffles ===") || !rec.contains("  - milk") {
		t.Fatalf("unexpected detail: %v", rec.lines)
	}
}

func TestAppValidationErrors(t *testing.T) {
	app, rec, ctx := newTestApp(t, nil)

	app.handle(ctx, "add name=; ingredients=flour; instructions=Cook.")
	if len(rec.urgent) == 0 || !strings.Contains(strings.Join(rec.urgent, "\n"), "name") {
		t.Fatalf("expected a name error, got %v", rec.urgent)
	}
	if len(app.store.Recipes()) != 0 {
		t.Fatal("invalid recipe was stored")
	}
}

func TestAppFilterSearchSort(t *testing.T) {
	app, rec, ctx := newTestApp(t, nil)
	app.handle(ctx, "add name=Pancakes; ingredients=flour, milk; instructions=Fry.; category=Dessert")
	app.handle(ctx, "add name=Nachos; ingredients=chips; instructions=Bake.; category=Snack")
	app.handle(ctx, "add name=Brownies; ingredients=cocoa; instructions=Bake.; category=Dessert")

	app.handle(ctx, "filter dessert")
	if app.store.Filter() != "Dessert" || len(app.lastView) != 2 {
		t.Fatalf("filter not applied: %q %d", app.store.Filter(), len(app.lastView))
	}

	app.handle(ctx, "search MILK")
	if len(app.lastView) != 1 {
		t.Fatalf("expected 1 match, got %d", len(app.lastView))
	}

	app.handle(ctx, "filter Soup")
	if len(app.lastView) != 0 {
		t.Fatal("unknown category should match nothing")
	}

	app.handle(ctx, "filter all")
	app.handle(ctx, "search")
	app.handle(ctx, "fav 3") // Pancakes is third by name
	rec.reset()
	app.handle(ctx, "sort favorite")
	if !rec.contains("1. Pancakes (Dessert) fav=true") {
		t.Fatalf("favorite not first: %v", rec.lines)
	}
	if st := app.Status(); st.Sort != "favorite" || st.Total != 3 || st.Visible != 3 {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestAppEditKeepsPositionAndFields(t *testing.T) {
	app, rec, ctx := newTestApp(t, nil)
	app.handle(ctx, "add name=Tea; ingredients=leaves; instructions=Steep.; category=Beverage; prep=5")
	app.handle(ctx, "list")

	rec.reset()
	app.handle(ctx, "edit 1")
	if !rec.contains("edit 1 name=Tea; ingredients=leaves; instructions=Steep.; category=Beverage; prep=5") {
		t.Fatalf("unexpected template: %v", rec.lines)
	}

	app.handle(ctx, "edit 1 name=Green Tea")
	got := app.store.Recipes()
	if len(got) != 1 || got[0].Name != "Green Tea" || got[0].PrepTime == nil || *got[0].PrepTime != 5 {
		t.Fatalf("unexpected recipe after edit: %+v", got)
	}
}

func TestAppShoppingList(t *testing.T) {
	app, rec, ctx := newTestApp(t, nil)
	app.handle(ctx, "add name=A; ingredients=egg, flour; instructions=x; category=Snack")
	app.handle(ctx, "add name=B; ingredients=flour, milk; instructions=x; category=Snack")
	app.handle(ctx, "list")

	app.handle(ctx, "shop 1")
	app.handle(ctx, "shop 2")
	if got := app.cart.Items(); strings.Join(got, ",") != "egg,flour,milk" {
		t.Fatalf("unexpected cart %v", got)
	}

	app.handle(ctx, "clear cart")
	rec.reset()
	app.handle(ctx, "cart")
	if !rec.contains("empty") {
		t.Fatalf("expected empty cart message, got %v", rec.lines)
	}
}

func TestAppDeleteAndUnknownTarget(t *testing.T) {
	app, rec, ctx := newTestApp(t, nil)
	app.handle(ctx, "add name=A; ingredients=egg; instructions=x; category=Snack")
	app.handle(ctx, "list")
	app.handle(ctx, "delete 1")
	if len(app.store.Recipes()) != 0 {
		t.Fatal("recipe not deleted")
	}

	rec.reset()
	app.handle(ctx, "show 9")
	if len(rec.urgent) != 1 {
		t.Fatalf("expected one error, got %v", rec.urgent)
	}
}

func TestAppPersistenceWarning(t *testing.T) {
	app, rec, ctx := newTestApp(t, brokenSnapshots{})

	app.handle(ctx, "add name=A; ingredients=egg; instructions=x; category=Snack")
	if len(app.store.Recipes()) != 1 {
		t.Fatal("change should be kept in memory")
	}
	if len(rec.urgent) != 1 || !strings.Contains(rec.urgent[0], "not saved") {
		t.Fatalf("expected a persistence warning, got %v", rec.urgent)
	}
	if !rec.contains("Added A.") {
		t.Fatal("success message missing after persistence warning")
	}
}

func TestAppShareAndQuit(t *testing.T) {
	app, rec, ctx := newTestApp(t, nil)
	app.handle(ctx, "add name=A; ingredients=egg; instructions=x; category=Snack")
	app.handle(ctx, "list")

	rec.reset()
	app.handle(ctx, "share 1")
	id := app.lastView[0]
	if !rec.contains("https://recipes.example/#recipe-" + id) {
		t.Fatalf("unexpected share output %v", rec.lines)
	}

	if app.handle(ctx, "quit") {
		t.Fatal("quit should stop the loop")
	}
	if !app.handle(ctx, "what is this") {
		t.Fatal("unknown input should keep the loop running")
	}
}
