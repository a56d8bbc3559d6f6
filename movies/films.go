package movies

import (
	"context"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/cinecache"
	"github.com/unkn0wn-root/cinecache/keys"
	"github.com/unkn0wn-root/cinecache/query"
)

const FilmIndex = "movies"

var (
	filmSearchFields = []string{"title", "description", "genres_names", "actors_names", "directors_names", "writers_names"}
	filmGenreFields  = []string{"genres_names"}
	filmListSource   = []string{"uuid", "title", "imdb_rating", "access_type"}
	publicFilter     = map[string]string{"access_type": string(AccessPublic)}
)

// Page is a validated page selector.
type Page struct {
	Size   int
	Number int
}

// ListParams select a page of a collection. URL is the raw query string of
// the request and keys the cache entry.
type ListParams struct {
	URL   string
	Page  Page
	Sort  []string // store form, see query.ParseSort
	Genre string
}

type SearchParams struct {
	Query string
	URL   string
	Page  Page
	Sort  []string
}

type FilmRepository struct {
	detail *cinecache.CachedSearchRepository[FilmDetail]
	list   *cinecache.CachedSearchRepository[FilmList]
}

func NewFilmRepository(detail *cinecache.CachedSearchRepository[FilmDetail], list *cinecache.CachedSearchRepository[FilmList]) *FilmRepository {
	return &FilmRepository{detail: detail, list: list}
}

func (r *FilmRepository) GetByID(ctx context.Context, id uuid.UUID) (FilmDetail, error) {
	return r.detail.GetByID(ctx, id.String(), SchemaFilmDetail)
}

// GetAll pages through every film, optionally narrowed to a genre.
func (r *FilmRepository) GetAll(ctx context.Context, p ListParams) ([]FilmList, error) {
	return r.getAll(ctx, p, nil)
}

// GetPublic is GetAll restricted to films without a subscription gate.
func (r *FilmRepository) GetPublic(ctx context.Context, p ListParams) ([]FilmList, error) {
	return r.getAll(ctx, p, publicFilter)
}

func (r *FilmRepository) getAll(ctx context.Context, p ListParams, filter map[string]string) ([]FilmList, error) {
	req := query.Prepare(query.Options{
		PageSize:   p.Page.Size,
		PageNumber: p.Page.Number,
		Paginate:   true,
		Query:      p.Genre,
		Fields:     filmGenreFields,
		Filter:     filter,
		Sort:       p.Sort,
		Source:     filmListSource,
	})
	return r.list.Search(ctx, req, keys.Params{Base: p.URL, Prefix: filmListPrefix(filter)})
}

func (r *FilmRepository) Search(ctx context.Context, p SearchParams) ([]FilmList, error) {
	req := query.Prepare(query.Options{
		PageSize:   p.Page.Size,
		PageNumber: p.Page.Number,
		Paginate:   true,
		Query:      p.Query,
		Fields:     filmSearchFields,
		Sort:       p.Sort,
		Source:     filmListSource,
	})
	return r.list.Search(ctx, req, keys.Params{Base: p.URL, Prefix: prefixFilmSearch})
}

func filmListPrefix(filter map[string]string) string {
	if filter["access_type"] == string(AccessPublic) {
		return prefixFilmListPublic
	}
	return prefixFilmListAll
}
