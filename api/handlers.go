// Package api exposes the read-only films, genres and persons HTTP API.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unkn0wn-root/cinecache"
	"github.com/unkn0wn-root/cinecache/movies"
)

type Config struct {
	Tokens         *TokenParser // nil rejects every bearer token
	SubscriberRole string       // "" => DefaultSubscriberRole
	Logger         cinecache.Logger
}

type Handler struct {
	repos          *movies.Repositories
	tokens         *TokenParser
	subscriberRole string
	log            cinecache.Logger
}

func NewHandler(repos *movies.Repositories, cfg Config) *Handler {
	h := &Handler{
		repos:          repos,
		tokens:         cfg.Tokens,
		subscriberRole: cfg.SubscriberRole,
		log:            cfg.Logger,
	}
	if h.subscriberRole == "" {
		h.subscriberRole = DefaultSubscriberRole
	}
	if h.log == nil {
		h.log = cinecache.NopLogger{}
	}
	return h
}

// RegisterRoutes mounts the v1 API on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/api/v1")

	films := v1.Group("/films")
	films.GET("", h.authenticate(), h.listFilms)
	films.GET("/search", h.searchFilms)
	films.GET("/:uuid", h.getFilm)

	genres := v1.Group("/genres")
	genres.GET("", h.listGenres)
	genres.GET("/:uuid", h.getGenre)

	persons := v1.Group("/persons")
	persons.GET("", h.listPersons)
	persons.GET("/search", h.searchPersons)
	persons.GET("/full/:uuid", h.getPersonDetailed)
	persons.GET("/:uuid", h.getPerson)
	persons.GET("/:uuid/films", h.getPersonFilms)

	v1.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// listFilms returns every film to subscribers and public films to everyone
// else.
func (h *Handler) listFilms(c *gin.Context) {
	page, verr := pageParams(c)
	if verr != nil {
		abort(c, verr)
		return
	}
	p := movies.ListParams{
		URL:   c.Request.URL.RawQuery,
		Page:  page,
		Sort:  sortParams(c),
		Genre: c.Query("filter[genre]"),
	}

	var (
		out []movies.FilmList
		err error
	)
	if hasRole(roles(c), h.subscriberRole) {
		out, err = h.repos.Films.GetAll(c.Request.Context(), p)
	} else {
		out, err = h.repos.Films.GetPublic(c.Request.Context(), p)
	}
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) searchFilms(c *gin.Context) {
	q, verr := requiredQuery(c)
	if verr != nil {
		abort(c, verr)
		return
	}
	page, verr := pageParams(c)
	if verr != nil {
		abort(c, verr)
		return
	}
	out, err := h.repos.Films.Search(c.Request.Context(), movies.SearchParams{
		Query: q,
		URL:   c.Request.URL.RawQuery,
		Page:  page,
		Sort:  sortParams(c),
	})
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getFilm(c *gin.Context) {
	id, verr := idParam(c)
	if verr != nil {
		abort(c, verr)
		return
	}
	f, err := h.repos.Films.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, errFilmNotFound)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *Handler) listGenres(c *gin.Context) {
	out, err := h.repos.Genres.GetList(c.Request.Context())
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getGenre(c *gin.Context) {
	id, verr := idParam(c)
	if verr != nil {
		abort(c, verr)
		return
	}
	g, err := h.repos.Genres.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, errGenreNotFound)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *Handler) listPersons(c *gin.Context) {
	page, verr := pageParams(c)
	if verr != nil {
		abort(c, verr)
		return
	}
	out, err := h.repos.Persons.GetAll(c.Request.Context(), c.Request.URL.RawQuery, page)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) searchPersons(c *gin.Context) {
	q, verr := requiredQuery(c)
	if verr != nil {
		abort(c, verr)
		return
	}
	page, verr := pageParams(c)
	if verr != nil {
		abort(c, verr)
		return
	}
	out, err := h.repos.Persons.Search(c.Request.Context(), movies.SearchParams{
		Query: q,
		URL:   c.Request.URL.RawQuery,
		Page:  page,
	})
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getPerson(c *gin.Context) {
	id, verr := idParam(c)
	if verr != nil {
		abort(c, verr)
		return
	}
	p, err := h.repos.Persons.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, errPersonNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) getPersonDetailed(c *gin.Context) {
	id, verr := idParam(c)
	if verr != nil {
		abort(c, verr)
		return
	}
	p, err := h.repos.Persons.GetByIDDetailed(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, errPersonNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) getPersonFilms(c *gin.Context) {
	id, verr := idParam(c)
	if verr != nil {
		abort(c, verr)
		return
	}
	out, err := h.repos.Persons.GetFilms(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, errPersonNotFound)
		return
	}
	c.JSON(http.StatusOK, out)
}
