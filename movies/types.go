package movies

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AgeRating string

const (
	AgeRatingGeneral          AgeRating = "G"
	AgeRatingParentalGuidance AgeRating = "PG"
	AgeRatingParents          AgeRating = "PG-13"
	AgeRatingRestricted       AgeRating = "R"
	AgeRatingAdults           AgeRating = "NC-17"
)

func (a AgeRating) Valid() bool {
	switch a {
	case AgeRatingGeneral, AgeRatingParentalGuidance, AgeRatingParents, AgeRatingRestricted, AgeRatingAdults:
		return true
	}
	return false
}

func (a AgeRating) MarshalJSON() ([]byte, error) { return marshalEnum(string(a)) }

func (a *AgeRating) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(a), "age rating", func(s string) bool { return AgeRating(s).Valid() })
}

type AccessType string

const (
	AccessPublic       AccessType = "public"
	AccessSubscription AccessType = "subscription"
)

func (a AccessType) Valid() bool { return a == AccessPublic || a == AccessSubscription }

func (a AccessType) MarshalJSON() ([]byte, error) { return marshalEnum(string(a)) }

func (a *AccessType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(a), "access type", func(s string) bool { return AccessType(s).Valid() })
}

type Role string

const (
	RoleActor    Role = "actor"
	RoleWriter   Role = "writer"
	RoleDirector Role = "director"
)

func (r Role) Valid() bool { return r == RoleActor || r == RoleWriter || r == RoleDirector }

func (r Role) MarshalJSON() ([]byte, error) { return marshalEnum(string(r)) }

func (r *Role) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(r), "role", func(s string) bool { return Role(s).Valid() })
}

// An unset enum encodes as null. null and "" both decode to unset; any other
// value must be known.
func marshalEnum(s string) ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(s)
}

func unmarshalEnum(b []byte, dst *string, what string, valid func(string) bool) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*dst = ""
		return nil
	}
	if !valid(*s) {
		return fmt.Errorf("movies: unknown %s %q", what, *s)
	}
	*dst = *s
	return nil
}

const dateLayout = "2006-01-02"

// Date is a calendar date encoded as "YYYY-MM-DD". Decoding also accepts a
// full RFC 3339 timestamp and keeps its date part. The zero Date is null.
type Date struct{ time.Time }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("movies: bad date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

type Genre struct {
	UUID uuid.UUID `json:"uuid"`
	Name string    `json:"name"`
}

type PersonList struct {
	UUID     uuid.UUID `json:"uuid"`
	FullName string    `json:"full_name"`
}

type PersonShort struct {
	UUID     uuid.UUID   `json:"uuid"`
	FullName string      `json:"full_name"`
	FilmsIDs []uuid.UUID `json:"films_ids"`
}

type FilmList struct {
	UUID       uuid.UUID  `json:"uuid"`
	Title      string     `json:"title"`
	IMDbRating *float64   `json:"imdb_rating"`
	AccessType AccessType `json:"access_type"`
}

type FilmDetail struct {
	UUID        uuid.UUID    `json:"uuid"`
	Title       string       `json:"title"`
	IMDbRating  *float64     `json:"imdb_rating"`
	Description string       `json:"description"`
	ReleaseDate Date         `json:"release_date"`
	AgeRating   AgeRating    `json:"age_rating"`
	AccessType  AccessType   `json:"access_type"`
	Genre       []Genre      `json:"genre"`
	Actors      []PersonList `json:"actors"`
	Writers     []PersonList `json:"writers"`
	Directors   []PersonList `json:"directors"`
}

type RoleFilms struct {
	Role  Role       `json:"role"`
	Films []FilmList `json:"films"`
}

type PersonDetailed struct {
	UUID     uuid.UUID   `json:"uuid"`
	FullName string      `json:"full_name"`
	Roles    []RoleFilms `json:"roles"`
}

// DistinctFilms flattens the films of all roles in order and drops repeated
// film ids. The first occurrence wins.
func DistinctFilms(roles []RoleFilms) []FilmList {
	seen := make(map[uuid.UUID]struct{})
	out := make([]FilmList, 0)
	for _, r := range roles {
		for _, f := range r.Films {
			if _, ok := seen[f.UUID]; ok {
				continue
			}
			seen[f.UUID] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}
