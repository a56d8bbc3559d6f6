// Package query builds backend-agnostic search requests from pagination,
// free-text and term-filter inputs.
package query

import (
	"strings"
)

const descending = ":desc"

// Clause is the scoring part of a request: a multi-field text match, or
// match-all when Text is empty.
type Clause struct {
	Text   string
	Fields []string
}

func (c Clause) MatchAll() bool { return c.Text == "" }

// Request is a prepared search. Size is nil when the caller did not paginate.
type Request struct {
	Clause
	Filter map[string]string
	Size   *int
	From   int
	Sort   []string
	Source []string
}

func (r Request) HasPagination() bool { return r.Size != nil }

// Options are the inputs of Prepare.
type Options struct {
	PageSize   int
	PageNumber int
	// Paginate enables size/from. Requests without pagination let the store
	// apply its own default window.
	Paginate bool

	Query  string
	Fields []string
	Filter map[string]string
	Sort   []string
	Source []string // returned document fields; empty returns whole documents
}

// Prepare turns options into a Request. Sort entries are used as given, run
// them through ParseSort first when they come from the API.
func Prepare(o Options) Request {
	r := Request{
		Clause: Clause{Text: o.Query},
		Sort:   o.Sort,
	}
	if len(o.Source) > 0 {
		r.Source = append([]string(nil), o.Source...)
	}
	if o.Query != "" {
		r.Fields = append([]string(nil), o.Fields...)
	}
	if len(o.Filter) > 0 {
		r.Filter = make(map[string]string, len(o.Filter))
		for k, v := range o.Filter {
			r.Filter[k] = v
		}
	}
	if o.Paginate {
		size := o.PageSize
		r.Size = &size
		r.From = CalcOffset(o.PageSize, o.PageNumber)
	}
	return r
}

// CalcOffset returns the offset of a page. Pages 0 and 1 both start at 0.
func CalcOffset(size, number int) int {
	if number <= 1 {
		return 0
	}
	return size*number - size
}

// ParseSort converts API sort params ("-imdb_rating") to store form
// ("imdb_rating:desc"). Params without the leading dash pass through.
func ParseSort(params []string) []string {
	if len(params) == 0 {
		return nil
	}
	out := make([]string, 0, len(params))
	for _, p := range params {
		if strings.HasPrefix(p, "-") {
			p = strings.TrimPrefix(p, "-") + descending
		}
		out = append(out, p)
	}
	return out
}

// Body renders the request as an elasticsearch query DSL document:
//
//	{"size": .., "from": .., "query": {"bool": {"must": .., "filter": {"term": ..}}}}
//
// Sort is not part of the body; stores pass it as a request parameter.
func (r Request) Body() map[string]any {
	var must map[string]any
	if r.MatchAll() {
		must = map[string]any{"match_all": map[string]any{}}
	} else {
		must = map[string]any{
			"multi_match": map[string]any{
				"query":  r.Text,
				"fields": r.Fields,
			},
		}
	}

	boolQ := map[string]any{"must": must}
	if len(r.Filter) > 0 {
		term := make(map[string]any, len(r.Filter))
		for k, v := range r.Filter {
			term[k] = v
		}
		boolQ["filter"] = map[string]any{"term": term}
	}

	body := map[string]any{"query": map[string]any{"bool": boolQ}}
	if r.Size != nil {
		body["size"] = *r.Size
		body["from"] = r.From
	}
	if len(r.Source) > 0 {
		body["_source"] = r.Source
	}
	return body
}
