// Package dataloader provides per-request DataLoaders that batch the
// destination lookups made while rendering item lists with
// ?expand=destination into a single SQL call.
package dataloader

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type destinationRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error)
}

// Loaders holds the per-request DataLoader instances.
type Loaders struct {
	DestinationByID *dataloader.Loader[uuid.UUID, *domain.Destination]
}

// NewLoaders creates a new set of DataLoaders backed by repo.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repo destinationRepo) *Loaders {
	return &Loaders{
		DestinationByID: dataloader.NewBatchedLoader(
			newDestinationBatchFn(repo),
			dataloader.WithWait[uuid.UUID, *domain.Destination](wait),
			dataloader.WithBatchCapacity[uuid.UUID, *domain.Destination](maxBatch),
		),
	}
}

// Middleware instantiates per-request loaders and stores them in the
// request context.
func Middleware(repo destinationRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(repo))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// newDestinationBatchFn loads destinations by ID. Rows owned by another
// user resolve to nil, as do missing IDs.
func newDestinationBatchFn(repo destinationRepo) dataloader.BatchFunc[uuid.UUID, *domain.Destination] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.Destination] {
		results := make([]*dataloader.Result[*domain.Destination], len(keys))

		rows, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[*domain.Destination]{Error: err}
			}
			return results
		}

		userID, _ := ctxutil.UserIDFromCtx(ctx)
		byID := make(map[uuid.UUID]*domain.Destination, len(rows))
		for i := range rows {
			if rows[i].UserID == userID {
				byID[rows[i].ID] = &rows[i]
			}
		}

		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.Destination]{Data: byID[key]}
		}
		return results
	}
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is middleware configured?")
	}
	return l
}

// LoadDestinations resolves the destinations of items in one batch. The
// result maps destination ID to destination; unknown IDs are absent.
func LoadDestinations(ctx context.Context, items []domain.Item) (map[uuid.UUID]*domain.Destination, error) {
	seen := make(map[uuid.UUID]struct{})
	var keys []uuid.UUID
	for _, it := range items {
		if it.DestinationID == nil {
			continue
		}
		if _, ok := seen[*it.DestinationID]; ok {
			continue
		}
		seen[*it.DestinationID] = struct{}{}
		keys = append(keys, *it.DestinationID)
	}

	out := make(map[uuid.UUID]*domain.Destination, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	dests, errs := FromContext(ctx).DestinationByID.LoadMany(ctx, keys)()
	for i, key := range keys {
		if errs != nil && errs[i] != nil {
			return nil, errs[i]
		}
		if dests[i] != nil {
			out[key] = dests[i]
		}
	}
	return out, nil
}
