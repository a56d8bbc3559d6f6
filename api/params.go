package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/google/uuid"

	"github.com/unkn0wn-root/cinecache/movies"
	"github.com/unkn0wn-root/cinecache/query"
)

const (
	DefaultPageSize   = 50
	DefaultPageNumber = 0
)

func pageParams(c *gin.Context) (movies.Page, *errors.Error) {
	p := movies.Page{Size: DefaultPageSize, Number: DefaultPageNumber}
	if v, ok := c.GetQuery("page[number]"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, validationError("page[number] must be a non-negative integer")
		}
		p.Number = n
	}
	if v, ok := c.GetQuery("page[size]"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return p, validationError("page[size] must be a positive integer")
		}
		p.Size = n
	}
	return p, nil
}

func sortParams(c *gin.Context) []string {
	return query.ParseSort(c.QueryArray("sort"))
}

func requiredQuery(c *gin.Context) (string, *errors.Error) {
	q := c.Query("query")
	if q == "" {
		return "", validationError("query is required")
	}
	return q, nil
}

func idParam(c *gin.Context) (uuid.UUID, *errors.Error) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return uuid.Nil, validationError("uuid is not a valid UUID")
	}
	return id, nil
}
