package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/unkn0wn-root/cinecache"
)

const rolesKey = "cinecache.roles"

// DefaultSubscriberRole unlocks films with the subscription access type.
const DefaultSubscriberRole = "subscribers"

// Claims is the part of the access token the API reads.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenParser validates bearer tokens signed with a shared HMAC secret.
type TokenParser struct {
	secret    []byte
	algorithm string
}

func NewTokenParser(secret []byte, algorithm string) *TokenParser {
	if algorithm == "" {
		algorithm = jwt.SigningMethodHS256.Alg()
	}
	return &TokenParser{secret: secret, algorithm: algorithm}
}

// Roles returns the roles claim of token.
func (p *TokenParser) Roles(token string) ([]string, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithValidMethods([]string{p.algorithm}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !t.Valid {
		return nil, errors.New("invalid token")
	}
	return claims.Roles, nil
}

// authenticate stores the caller's roles on the context. Anonymous requests
// get no roles; a token that fails validation is rejected.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abort(c, errAuthorization)
			return
		}
		if h.tokens == nil {
			abort(c, errAuthorization)
			return
		}
		roles, err := h.tokens.Roles(strings.TrimSpace(token))
		if err != nil {
			h.log.Debug("token rejected", cinecache.Fields{"err": err.Error()})
			abort(c, errAuthorization)
			return
		}
		c.Set(rolesKey, roles)
		c.Next()
	}
}

func roles(c *gin.Context) []string {
	v, ok := c.Get(rolesKey)
	if !ok {
		return nil
	}
	r, _ := v.([]string)
	return r
}

func hasRole(rs []string, role string) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}
