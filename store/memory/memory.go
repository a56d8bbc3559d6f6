// Package memory is an in-process store.SearchStore. It evaluates the subset
// of query.Request the repositories produce: match-all or multi-field text
// match, exact term filters, field sort, from/size windows and top-level
// _source projection.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/unkn0wn-root/cinecache/query"
	"github.com/unkn0wn-root/cinecache/store"
)

// DefaultSize is the window applied to requests without pagination.
const DefaultSize = 10

// IDField names the document field used as id.
const IDField = "uuid"

type entry struct {
	raw    store.Document
	fields map[string]any
}

type collection struct {
	order []string
	byID  map[string]entry
}

type Store struct {
	mu   sync.RWMutex
	cols map[string]*collection
}

var _ store.SearchStore = (*Store)(nil)

func New() *Store {
	return &Store{cols: make(map[string]*collection)}
}

// Put adds or replaces documents in name. Every document must be a JSON
// object with a string "uuid".
func (s *Store) Put(name string, docs ...store.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cols[name]
	if c == nil {
		c = &collection{byID: make(map[string]entry)}
		s.cols[name] = c
	}
	for _, d := range docs {
		var fields map[string]any
		if err := json.Unmarshal(d, &fields); err != nil {
			return fmt.Errorf("memory store: %s: %w", name, err)
		}
		id, _ := fields[IDField].(string)
		if id == "" {
			return fmt.Errorf("memory store: %s: document without %s", name, IDField)
		}
		if _, ok := c.byID[id]; !ok {
			c.order = append(c.order, id)
		}
		c.byID[id] = entry{raw: append(store.Document(nil), d...), fields: fields}
	}
	return nil
}

// LoadFile reads {"<collection>": [doc, ...], ...} from path.
func (s *Store) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var seed map[string][]store.Document
	if err := json.Unmarshal(b, &seed); err != nil {
		return fmt.Errorf("memory store: %s: %w", path, err)
	}
	for name, docs := range seed {
		if err := s.Put(name, docs...); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, name, id string) (store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.cols[name]
	if c == nil {
		return nil, store.ErrNotFound
	}
	e, ok := c.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return e.raw, nil
}

func (s *Store) Search(ctx context.Context, name string, req query.Request) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.cols[name]
	if c == nil {
		return []store.Document{}, nil
	}

	hits := make([]entry, 0, len(c.order))
	for _, id := range c.order {
		e := c.byID[id]
		if matches(e.fields, req) {
			hits = append(hits, e)
		}
	}
	sortHits(hits, req.Sort)

	size := DefaultSize
	if req.Size != nil {
		size = *req.Size
	}
	from := req.From
	if from < 0 {
		from = 0
	}
	if from >= len(hits) || size <= 0 {
		return []store.Document{}, nil
	}
	end := from + size
	if end > len(hits) {
		end = len(hits)
	}

	out := make([]store.Document, 0, end-from)
	for _, e := range hits[from:end] {
		if len(req.Source) == 0 {
			out = append(out, e.raw)
			continue
		}
		d, err := project(e.fields, req.Source)
		if err != nil {
			return nil, fmt.Errorf("memory store: %s: %w", name, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// project keeps the top-level fields named in source.
func project(fields map[string]any, source []string) (store.Document, error) {
	m := make(map[string]any, len(source))
	for _, f := range source {
		if v, ok := fields[f]; ok {
			m[f] = v
		}
	}
	return json.Marshal(m)
}

func (s *Store) GetAll(ctx context.Context, name string, req query.Request) ([]store.Document, error) {
	req.Clause = query.Clause{}
	req.Filter = nil
	return s.Search(ctx, name, req)
}

func matches(doc map[string]any, req query.Request) bool {
	for field, want := range req.Filter {
		if !containsString(lookup(doc, field), want) {
			return false
		}
	}
	if req.MatchAll() {
		return true
	}
	terms := tokenize(req.Text)
	for _, f := range req.Fields {
		for _, v := range lookup(doc, f) {
			s, ok := v.(string)
			if !ok {
				continue
			}
			for _, tok := range tokenize(s) {
				for _, t := range terms {
					if tok == t {
						return true
					}
				}
			}
		}
	}
	return false
}

// lookup resolves a dotted path, flattening arrays on the way.
func lookup(doc map[string]any, path string) []any {
	cur := []any{doc}
	for _, part := range strings.Split(path, ".") {
		var next []any
		for _, v := range cur {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			next = appendFlat(next, m[part])
		}
		cur = next
	}
	return cur
}

func appendFlat(dst []any, v any) []any {
	switch t := v.(type) {
	case nil:
		return dst
	case []any:
		for _, x := range t {
			dst = appendFlat(dst, x)
		}
		return dst
	default:
		return append(dst, v)
	}
}

func containsString(vals []any, want string) bool {
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s == want {
			return true
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// sortHits orders by "field" or "field:asc|desc" specs. Documents missing a
// field sort last regardless of direction.
func sortHits(hits []entry, specs []string) {
	if len(specs) == 0 {
		return
	}
	type key struct {
		field string
		desc  bool
	}
	ks := make([]key, 0, len(specs))
	for _, sp := range specs {
		field, dir, _ := strings.Cut(sp, ":")
		ks = append(ks, key{field: field, desc: strings.EqualFold(dir, "desc")})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		for _, k := range ks {
			a, aok := first(lookup(hits[i].fields, k.field))
			b, bok := first(lookup(hits[j].fields, k.field))
			switch {
			case !aok && !bok:
				continue
			case !aok:
				return false
			case !bok:
				return true
			}
			c := compare(a, b)
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func first(vs []any) (any, bool) {
	if len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

func compare(a, b any) int {
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
