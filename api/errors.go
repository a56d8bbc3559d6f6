package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kratos/kratos/v2/errors"

	"github.com/unkn0wn-root/cinecache"
)

const (
	reasonNotFound      = "not_found"
	reasonAuthorization = "authorization_error"
	reasonValidation    = "validation_error"
	reasonInternal      = "internal_error"
)

var (
	errFilmNotFound   = errors.NotFound(reasonNotFound, "Film not found")
	errGenreNotFound  = errors.NotFound(reasonNotFound, "Genre not found")
	errPersonNotFound = errors.NotFound(reasonNotFound, "Person not found")
	errAuthorization  = errors.Unauthorized(reasonAuthorization, "Authorization error")
	errInternal       = errors.InternalServer(reasonInternal, "Internal server error")
)

func validationError(msg string) *errors.Error {
	return errors.New(http.StatusUnprocessableEntity, reasonValidation, msg)
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// fail maps err to its API error and aborts the request. notFound is the
// entity specific answer used when err is a not-found read.
func (h *Handler) fail(c *gin.Context, err error, notFound *errors.Error) {
	var e *errors.Error
	switch {
	case errors.As(err, &e):
	case cinecache.Classify(err) == cinecache.ResultNotFound && notFound != nil:
		e = notFound
	default:
		h.log.Error("request failed", cinecache.Fields{
			"path": c.FullPath(),
			"err":  err.Error(),
		})
		e = errInternal
	}
	abort(c, e)
}

func abort(c *gin.Context, e *errors.Error) {
	c.AbortWithStatusJSON(int(e.Code), errorBody{Error: errorDetail{Code: e.Reason, Message: e.Message}})
}
