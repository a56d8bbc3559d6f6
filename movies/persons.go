package movies

import (
	"context"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/cinecache"
	"github.com/unkn0wn-root/cinecache/keys"
	"github.com/unkn0wn-root/cinecache/query"
)

const PersonIndex = "person"

var personSearchFields = []string{"full_name"}

type PersonRepository struct {
	short    *cinecache.CachedSearchRepository[PersonShort]
	detailed *cinecache.CachedSearchRepository[PersonDetailed]
	list     *cinecache.CachedSearchRepository[PersonList]

	// person films are derived from the detailed document
	source *cinecache.SearchRepository[PersonDetailed]
	films  *cinecache.TypedCache[FilmList]
	keys   PersonKeys
}

type PersonDeps struct {
	Short    *cinecache.CachedSearchRepository[PersonShort]
	Detailed *cinecache.CachedSearchRepository[PersonDetailed]
	List     *cinecache.CachedSearchRepository[PersonList]
	Source   *cinecache.SearchRepository[PersonDetailed]
	Films    *cinecache.TypedCache[FilmList]
	Keys     PersonKeys
}

func NewPersonRepository(d PersonDeps) *PersonRepository {
	return &PersonRepository{
		short:    d.Short,
		detailed: d.Detailed,
		list:     d.List,
		source:   d.Source,
		films:    d.Films,
		keys:     d.Keys,
	}
}

func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (PersonShort, error) {
	return r.short.GetByID(ctx, id.String(), SchemaPersonShort)
}

func (r *PersonRepository) GetByIDDetailed(ctx context.Context, id uuid.UUID) (PersonDetailed, error) {
	return r.detailed.GetByID(ctx, id.String(), SchemaPersonDetailed)
}

func (r *PersonRepository) GetAll(ctx context.Context, url string, page Page) ([]PersonList, error) {
	req := query.Prepare(query.Options{PageSize: page.Size, PageNumber: page.Number, Paginate: true})
	return r.list.Search(ctx, req, keys.Params{Base: url, Prefix: prefixPersonList})
}

func (r *PersonRepository) Search(ctx context.Context, p SearchParams) ([]PersonShort, error) {
	req := query.Prepare(query.Options{
		PageSize:   p.Page.Size,
		PageNumber: p.Page.Number,
		Paginate:   true,
		Query:      p.Query,
		Fields:     personSearchFields,
		Sort:       p.Sort,
	})
	return r.short.Search(ctx, req, keys.Params{Base: p.URL, Prefix: prefixPersonSearch})
}

// GetFilms returns the distinct films the person took part in, in role order.
func (r *PersonRepository) GetFilms(ctx context.Context, id uuid.UUID) ([]FilmList, error) {
	pid := id.String()
	return cinecache.FetchList(ctx, r.films, r.keys.FilmsKey(pid), func(ctx context.Context) ([]FilmList, error) {
		p, err := r.source.GetByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		return DistinctFilms(p.Roles), nil
	})
}
