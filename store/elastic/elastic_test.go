package elastic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/cinecache/query"
	"github.com/unkn0wn-root/cinecache/store"
)

type recorded struct {
	method, path, sort string
	body               map[string]any
}

func newTestStore(t *testing.T, h func(w http.ResponseWriter, r *http.Request)) (*Store, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, sort: r.URL.Query().Get("sort")}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		calls = append(calls, rec)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient([]string{srv.URL}, "", "", 0)
	require.NoError(t, err)
	s, err := New(Config{Client: client, RequestTimeout: 2 * time.Second})
	require.NoError(t, err)
	return s, &calls
}

func TestNewRequiresClient(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNilClient)
}

func TestGetByID(t *testing.T) {
	s, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"_index":"movies","_id":"missing","found":false}`)
			return
		}
		_, _ = io.WriteString(w, `{"_index":"movies","_id":"1","found":true,"_source":{"uuid":"1","title":"Alien"}}`)
	})
	ctx := context.Background()

	doc, err := s.GetByID(ctx, "movies", "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"uuid":"1","title":"Alien"}`, string(doc))
	assert.Equal(t, "/movies/_doc/1", (*calls)[0].path)

	_, err = s.GetByID(ctx, "movies", "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSearchSendsBodyAndSort(t *testing.T) {
	s, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":2},"hits":[
			{"_id":"1","_source":{"uuid":"1","title":"Alien"}},
			{"_id":"2","_source":{"uuid":"2","title":"Aliens"}}]}}`)
	})

	req := query.Prepare(query.Options{
		PageSize: 10, PageNumber: 2, Paginate: true,
		Query: "alien", Fields: []string{"title"},
		Sort: query.ParseSort([]string{"-imdb_rating"}),
	})
	docs, err := s.Search(context.Background(), "movies", req)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.JSONEq(t, `{"uuid":"2","title":"Aliens"}`, string(docs[1]))

	c := (*calls)[0]
	assert.Equal(t, "/movies/_search", c.path)
	assert.Equal(t, "imdb_rating:desc", c.sort)
	assert.EqualValues(t, 10, c.body["size"])
	assert.EqualValues(t, 10, c.body["from"])
}

func TestSearchBadRequestIsEmpty(t *testing.T) {
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"type":"search_phase_execution_exception","reason":"No mapping found for [foo] in order to sort on"},"status":400}`)
	})

	docs, err := s.Search(context.Background(), "movies", query.Request{Sort: []string{"foo"}})
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestSearchServerErrorPropagates(t *testing.T) {
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"type":"cluster_block_exception","reason":"blocked"},"status":503}`)
	})

	_, err := s.Search(context.Background(), "movies", query.Request{})
	var rerr *ResponseError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusServiceUnavailable, rerr.Status)
	assert.Equal(t, "cluster_block_exception", rerr.Type)
}

func TestGetAllIsMatchAll(t *testing.T) {
	s, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hits":{"hits":[]}}`)
	})

	docs, err := s.GetAll(context.Background(), "genre", query.Request{Clause: query.Clause{Text: "x", Fields: []string{"name"}}})
	require.NoError(t, err)
	assert.Empty(t, docs)

	q := (*calls)[0].body["query"].(map[string]any)["bool"].(map[string]any)["must"].(map[string]any)
	assert.Contains(t, q, "match_all")
}
