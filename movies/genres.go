package movies

import (
	"context"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/cinecache"
	"github.com/unkn0wn-root/cinecache/keys"
	"github.com/unkn0wn-root/cinecache/query"
)

const GenreIndex = "genre"

// DefaultGenreListSize bounds the single genre list read.
const DefaultGenreListSize = 100

type GenreRepository struct {
	repo     *cinecache.CachedSearchRepository[Genre]
	listSize int
}

func NewGenreRepository(repo *cinecache.CachedSearchRepository[Genre], listSize int) *GenreRepository {
	if listSize <= 0 {
		listSize = DefaultGenreListSize
	}
	return &GenreRepository{repo: repo, listSize: listSize}
}

func (r *GenreRepository) GetByID(ctx context.Context, id uuid.UUID) (Genre, error) {
	return r.repo.GetByID(ctx, id.String(), SchemaGenre)
}

func (r *GenreRepository) GetList(ctx context.Context) ([]Genre, error) {
	size := r.listSize
	return r.repo.GetAll(ctx, query.Request{Size: &size}, keys.Params{})
}
