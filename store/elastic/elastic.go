// Package elastic implements store.SearchStore on top of Elasticsearch.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/unkn0wn-root/cinecache"
	"github.com/unkn0wn-root/cinecache/query"
	"github.com/unkn0wn-root/cinecache/store"
)

const DefaultRequestTimeout = 5 * time.Second

var ErrNilClient = errors.New("elastic store: nil client")

// ResponseError is a non-2xx answer from the cluster.
type ResponseError struct {
	Status int
	Type   string
	Reason string
}

func (e *ResponseError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("elastic: status %d", e.Status)
	}
	return fmt.Sprintf("elastic: status %d: %s: %s", e.Status, e.Type, e.Reason)
}

type Config struct {
	Client *es.Client // required

	RequestTimeout time.Duration // per request; 0 => 5s
	Logger         cinecache.Logger
}

type Store struct {
	es      *es.Client
	timeout time.Duration
	log     cinecache.Logger
}

var _ store.SearchStore = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	s := &Store{es: cfg.Client, timeout: cfg.RequestTimeout, log: cfg.Logger}
	if s.timeout <= 0 {
		s.timeout = DefaultRequestTimeout
	}
	if s.log == nil {
		s.log = cinecache.NopLogger{}
	}
	return s, nil
}

// NewClient builds a client for addresses with basic auth when username is set.
func NewClient(addresses []string, username, password string, maxRetries int) (*es.Client, error) {
	return es.NewClient(es.Config{
		Addresses:  addresses,
		Username:   username,
		Password:   password,
		MaxRetries: maxRetries,
	})
}

func (s *Store) GetByID(ctx context.Context, collection, id string) (store.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.es.Get(collection, id, s.es.Get.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, store.ErrNotFound
	}
	if res.IsError() {
		return nil, responseError(res)
	}

	var doc struct {
		Found  bool            `json:"found"`
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("elastic: decode get response: %w", err)
	}
	if !doc.Found || len(doc.Source) == 0 {
		return nil, store.ErrNotFound
	}
	return doc.Source, nil
}

// Search runs req against collection. A request the cluster rejects as
// malformed (400) yields an empty result.
func (s *Store) Search(ctx context.Context, collection string, req query.Request) ([]store.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(req.Body()); err != nil {
		return nil, err
	}

	opts := []func(*esapi.SearchRequest){
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(collection),
		s.es.Search.WithBody(&body),
	}
	if len(req.Sort) > 0 {
		opts = append(opts, s.es.Search.WithSort(req.Sort...))
	}

	res, err := s.es.Search(opts...)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusBadRequest {
		rerr := responseError(res)
		s.log.Warn("search request rejected", cinecache.Fields{
			"collection": collection,
			"err":        rerr.Error(),
		})
		return []store.Document{}, nil
	}
	if res.IsError() {
		return nil, responseError(res)
	}

	var out struct {
		Hits struct {
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("elastic: decode search response: %w", err)
	}
	docs := make([]store.Document, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		docs = append(docs, h.Source)
	}
	return docs, nil
}

func (s *Store) GetAll(ctx context.Context, collection string, req query.Request) ([]store.Document, error) {
	req.Clause = query.Clause{}
	req.Filter = nil
	return s.Search(ctx, collection, req)
}

// Ping reports whether the cluster answers.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.es.Ping(s.es.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError(res)
	}
	return nil
}

func responseError(res *esapi.Response) *ResponseError {
	e := &ResponseError{Status: res.StatusCode}
	b, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	var body struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if json.Unmarshal(b, &body) == nil {
		e.Type = body.Error.Type
		e.Reason = body.Error.Reason
	}
	return e
}
