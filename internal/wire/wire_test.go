package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestItemIsJSONString(t *testing.T) {
	enc, err := EncodeItem([]byte(`{"uuid":"1","name":"Drama"}`))
	if err != nil {
		t.Fatalf("EncodeItem: %v", err)
	}
	want := `"{\"uuid\":\"1\",\"name\":\"Drama\"}"`
	if string(enc) != want {
		t.Fatalf("item = %s want %s", enc, want)
	}
	p, err := DecodeItem(enc)
	if err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if string(p) != `{"uuid":"1","name":"Drama"}` {
		t.Fatalf("payload = %s", p)
	}
}

func TestItemAcceptsBareObject(t *testing.T) {
	p, err := DecodeItem([]byte(` {"uuid":"1"} `))
	if err != nil || string(p) != `{"uuid":"1"}` {
		t.Fatalf("DecodeItem bare = %s, %v", p, err)
	}
}

func TestListDoubleEncoded(t *testing.T) {
	enc, err := EncodeList([][]byte{[]byte(`{"a":1}`), []byte(`{"a":2}`)})
	if err != nil {
		t.Fatalf("EncodeList: %v", err)
	}
	if string(enc) != `["{\"a\":1}","{\"a\":2}"]` {
		t.Fatalf("list = %s", enc)
	}
	items, err := DecodeList(enc)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(items) != 2 || !bytes.Equal(items[1], []byte(`{"a":2}`)) {
		t.Fatalf("items = %q", items)
	}
}

func TestEmptyList(t *testing.T) {
	enc, err := EncodeList(nil)
	if err != nil {
		t.Fatalf("EncodeList: %v", err)
	}
	if string(enc) != `[]` {
		t.Fatalf("empty list = %s", enc)
	}
	items, err := DecodeList(enc)
	if err != nil || len(items) != 0 {
		t.Fatalf("DecodeList(empty) = %v, %v", items, err)
	}
}

func TestCorrupt(t *testing.T) {
	for _, in := range []string{"", "42", "nul", `"unterminated`, `{"a":`} {
		if _, err := DecodeItem([]byte(in)); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("DecodeItem(%q) err = %v", in, err)
		}
	}
	for _, in := range []string{"", `{"a":1}`, `[1,2]`, `["x",`} {
		if _, err := DecodeList([]byte(in)); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("DecodeList(%q) err = %v", in, err)
		}
	}
}
