package query

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCalcOffset(t *testing.T) {
	cases := []struct{ size, number, want int }{
		{10, 0, 0},
		{10, 1, 0},
		{10, 2, 10},
		{10, 3, 20},
		{50, -4, 0},
	}
	for _, tc := range cases {
		if got := CalcOffset(tc.size, tc.number); got != tc.want {
			t.Fatalf("CalcOffset(%d,%d) = %d want %d", tc.size, tc.number, got, tc.want)
		}
	}
}

func TestParseSort(t *testing.T) {
	got := ParseSort([]string{"-imdb_rating", "title", "-"})
	want := []string{"imdb_rating:desc", "title", ":desc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSort = %v want %v", got, want)
	}
	if ParseSort(nil) != nil {
		t.Fatalf("nil params must stay nil")
	}
}

func TestPrepareMatchAll(t *testing.T) {
	r := Prepare(Options{PageSize: 10, PageNumber: 3, Paginate: true, Fields: []string{"title"}})
	if !r.MatchAll() {
		t.Fatalf("expected match-all")
	}
	if r.Fields != nil {
		t.Fatalf("fields must be ignored without a query: %v", r.Fields)
	}
	if !r.HasPagination() || *r.Size != 10 || r.From != 20 {
		t.Fatalf("pagination = %v/%d", r.Size, r.From)
	}
}

func TestPrepareWithoutPagination(t *testing.T) {
	r := Prepare(Options{Query: "star", Fields: []string{"title"}})
	if r.HasPagination() {
		t.Fatalf("unexpected pagination")
	}
	if _, ok := r.Body()["size"]; ok {
		t.Fatalf("size must be absent from body")
	}
}

func TestBodyLayout(t *testing.T) {
	r := Prepare(Options{
		PageSize: 2, PageNumber: 2, Paginate: true,
		Query:  "Comedy",
		Fields: []string{"genres_names"},
		Filter: map[string]string{"access_type": "public"},
	})
	b, err := json.Marshal(r.Body())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"from":2,"query":{"bool":{"filter":{"term":{"access_type":"public"}},` +
		`"must":{"multi_match":{"fields":["genres_names"],"query":"Comedy"}}}},"size":2}`
	if string(b) != want {
		t.Fatalf("body:\n got %s\nwant %s", b, want)
	}
}

func TestPrepareCopiesFilter(t *testing.T) {
	f := map[string]string{"access_type": "public"}
	r := Prepare(Options{Filter: f})
	f["access_type"] = "subscription"
	if r.Filter["access_type"] != "public" {
		t.Fatalf("request must not alias caller filter")
	}
}

func TestPrepareSource(t *testing.T) {
	src := []string{"uuid", "title"}
	r := Prepare(Options{Source: src})
	src[0] = "x"
	if len(r.Source) != 2 || r.Source[0] != "uuid" {
		t.Fatalf("Source = %v", r.Source)
	}
	got, ok := r.Body()["_source"].([]string)
	if !ok || len(got) != 2 {
		t.Fatalf("_source = %v", r.Body()["_source"])
	}
	if _, ok := Prepare(Options{}).Body()["_source"]; ok {
		t.Fatalf("_source rendered without Source")
	}
}
