package movies

import (
	"github.com/unkn0wn-root/cinecache"
	"github.com/unkn0wn-root/cinecache/keys"
)

const (
	SchemaFilmDetail     cinecache.Schema = "film_detail"
	SchemaFilmList       cinecache.Schema = "film_list"
	SchemaGenre          cinecache.Schema = "genre"
	SchemaPersonList     cinecache.Schema = "person_list"
	SchemaPersonShort    cinecache.Schema = "person_short"
	SchemaPersonDetailed cinecache.Schema = "person_detailed"
)

const (
	prefixFilmListAll    = "films:list:all"
	prefixFilmListPublic = "films:list:public"
	prefixFilmSearch     = "films:search"
	prefixPersonList     = "persons:list"
	prefixPersonSearch   = "persons:search"

	genreListKey = "genres:list"
)

const (
	filmNamespace   = "films"
	genreNamespace  = "genres"
	personNamespace = "persons"
)

// FilmKeys: "films:<id>" for point reads, hashed request params otherwise.
type FilmKeys struct{ keys.Hashed }

func NewFilmKeys(hashLength int) FilmKeys {
	return FilmKeys{keys.Hashed{Namespace: filmNamespace, HashLength: hashLength}}
}

// GenreKeys: "genres:<id>" for point reads. Genres have a single list entry.
type GenreKeys struct{}

func (GenreKeys) Key(p keys.Params) string {
	if p.Point() {
		return keys.Join(genreNamespace, p.DocID)
	}
	return genreListKey
}

// PersonKeys keeps the short and detailed views of a person apart.
type PersonKeys struct{ keys.Hashed }

func NewPersonKeys(hashLength int) PersonKeys {
	return PersonKeys{keys.Hashed{Namespace: personNamespace, HashLength: hashLength}}
}

func (k PersonKeys) Key(p keys.Params) string {
	if !p.Point() {
		return k.Hashed.Key(p)
	}
	if p.Schema == SchemaPersonShort.Name() {
		return keys.Join(personNamespace, p.DocID)
	}
	return keys.Join(personNamespace, p.DocID) + ".detailed"
}

// FilmsKey is the entry holding the distinct films of a person.
func (PersonKeys) FilmsKey(id string) string {
	return keys.Join(personNamespace, id, "films")
}

var (
	_ keys.Factory = FilmKeys{}
	_ keys.Factory = GenreKeys{}
	_ keys.Factory = PersonKeys{}
)
