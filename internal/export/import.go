package export

import (
	"context"
	"errors"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/store"
)

// Creator is the part of the store that Import needs.
type Creator interface {
	Create(ctx context.Context, req store.CreateRequest) (domain.Recipe, error)
}

// Skipped records an input recipe that was not imported.
type Skipped struct {
	Index int
	Name  string
	Err   error
}

// Result summarizes an import.
type Result struct {
	Imported []domain.Recipe
	Skipped  []Skipped
}

// Import creates one new recipe per record. Ids in the input are ignored
// and fresh ones assigned; the favorite flag is kept. Invalid records are
// skipped. A persistence failure does not stop the import; the last one is
// returned after every record has been applied.
func Import(ctx context.Context, c Creator, recipes []domain.Recipe) (Result, error) {
	var res Result
	var persistErr error

	for i, r := range recipes {
		req, err := store.NewCreateRequest(store.DraftOf(r))
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Index: i, Name: r.Name, Err: err})
			continue
		}

		created, err := c.Create(ctx, req)
		var perr *domain.PersistenceError
		switch {
		case errors.As(err, &perr):
			persistErr = err
		case err != nil:
			res.Skipped = append(res.Skipped, Skipped{Index: i, Name: r.Name, Err: err})
			continue
		}
		res.Imported = append(res.Imported, created)
	}
	return res, persistErr
}
