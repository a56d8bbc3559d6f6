package redis

import (
	goredis "github.com/redis/go-redis/v9"
)

// NewSentinelClients builds a primary client and a replica-only client for
// the same sentinel master set. The replica client is what Config.Replica
// expects.
func NewSentinelClients(opts *goredis.FailoverOptions) (primary, replica goredis.UniversalClient) {
	p := *opts
	p.ReplicaOnly = false
	r := *opts
	r.ReplicaOnly = true
	return goredis.NewFailoverClient(&p), goredis.NewFailoverClient(&r)
}
