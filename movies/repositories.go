package movies

import (
	"time"

	"github.com/unkn0wn-root/cinecache"
	"github.com/unkn0wn-root/cinecache/codec"
	"github.com/unkn0wn-root/cinecache/keys"
	pr "github.com/unkn0wn-root/cinecache/provider"
	"github.com/unkn0wn-root/cinecache/store"
)

// Config is shared by every repository built by NewRepositories.
type Config struct {
	TTL           time.Duration // 0 => cinecache.DefaultTTL
	HashLength    int           // 0 => keys.DefaultHashLength
	GenreListSize int           // 0 => DefaultGenreListSize
	MaxEntryBytes int           // entries larger than this are treated as corrupt; 0 = unlimited

	Logger cinecache.Logger
	Hooks  cinecache.Hooks
}

type Repositories struct {
	Films   *FilmRepository
	Genres  *GenreRepository
	Persons *PersonRepository
}

// NewRepositories wires the three domain repositories over one search store
// and one cache provider.
func NewRepositories(s store.SearchStore, p pr.Provider, cfg Config) (*Repositories, error) {
	opts := cinecache.Options{TTL: cfg.TTL, Logger: cfg.Logger, Hooks: cfg.Hooks}

	filmDetail, err := cached[FilmDetail](s, p, FilmIndex, NewFilmKeys(cfg.HashLength), opts, cfg.MaxEntryBytes)
	if err != nil {
		return nil, err
	}
	filmList, err := cached[FilmList](s, p, FilmIndex, NewFilmKeys(cfg.HashLength), opts, cfg.MaxEntryBytes)
	if err != nil {
		return nil, err
	}
	genres, err := cached[Genre](s, p, GenreIndex, GenreKeys{}, opts, cfg.MaxEntryBytes)
	if err != nil {
		return nil, err
	}

	pk := NewPersonKeys(cfg.HashLength)
	personShort, err := cached[PersonShort](s, p, PersonIndex, pk, opts, cfg.MaxEntryBytes)
	if err != nil {
		return nil, err
	}
	personDetailed, err := cached[PersonDetailed](s, p, PersonIndex, pk, opts, cfg.MaxEntryBytes)
	if err != nil {
		return nil, err
	}
	personList, err := cached[PersonList](s, p, PersonIndex, pk, opts, cfg.MaxEntryBytes)
	if err != nil {
		return nil, err
	}
	personSource, err := cinecache.NewSearchRepository[PersonDetailed](s, PersonIndex)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Films:  NewFilmRepository(filmDetail, filmList),
		Genres: NewGenreRepository(genres, cfg.GenreListSize),
		Persons: NewPersonRepository(PersonDeps{
			Short:    personShort,
			Detailed: personDetailed,
			List:     personList,
			Source:   personSource,
			Films:    filmList.Cache(),
			Keys:     pk,
		}),
	}, nil
}

func cached[V any](s store.SearchStore, p pr.Provider, index string, kf keys.Factory, opts cinecache.Options, maxBytes int) (*cinecache.CachedSearchRepository[V], error) {
	var c codec.Codec[V] = codec.JSON[V]{}
	if maxBytes > 0 {
		c = codec.Limit[V]{Inner: c, MaxDecode: maxBytes}
	}
	tc, err := cinecache.NewTypedCache[V](p, c, opts)
	if err != nil {
		return nil, err
	}
	sr, err := cinecache.NewSearchRepository[V](s, index)
	if err != nil {
		return nil, err
	}
	return cinecache.NewCachedSearchRepository[V](sr, tc, kf)
}
