// Package movies holds the film, genre and person read models and the cached
// repositories that serve them.
package movies
