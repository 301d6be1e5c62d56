// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"math"
	"testing"
)

func TestEncodeJSONKeepsTableOrder(t *testing.T) {
	document := Table{{Key: "bool", Value: Table{
		{Key: "name", Value: "test_bool"},
		{Key: "value", Value: true},
		{Key: "constr", Value: Table{{Key: "scope", Value: Table{
			{Key: "beg", Value: uint64(1)},
			{Key: "end", Value: uint64(10)},
		}}}},
	}}}

	data, err := Encode(JSON, document)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"bool":{"name":"test_bool","value":true,"constr":{"scope":{"beg":1,"end":10}}}}`
	if string(data) != want {
		t.Errorf("got  %s\nwant %s", data, want)
	}
}

func TestEncodeJSONScalars(t *testing.T) {
	tests := []struct {
		name     string
		document any
		want     string
	}{
		{"bare string", "locked", `"locked"`},
		{"null", nil, `null`},
		{"max uint64", uint64(math.MaxUint64), `18446744073709551615`},
		{"float", 3.14, `3.14`},
		{"whole float", 2.0, `2`},
		{"html is not escaped", "<a&b>", `"<a&b>"`},
		{"sequence", []any{"a", uint64(1)}, `["a",1]`},
		{"empty table", Table{}, `{}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := Encode(JSON, test.document)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if string(data) != test.want {
				t.Errorf("got %s, want %s", data, test.want)
			}
		})
	}
}

func TestEncodeJSONRejectsNonFinite(t *testing.T) {
	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Encode(JSON, value); !errors.Is(err, ErrNotRepresentable) {
			t.Errorf("Encode(%v) error = %v, want ErrNotRepresentable", value, err)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	document, err := Decode(JSON, []byte(`{"scope": {"end": 100, "beg": 1}, "ratio": 1.618, "big": 18446744073709551615}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	root := document.(Table)
	if got := root.Keys(); len(got) != 3 || got[0] != "scope" || got[1] != "ratio" || got[2] != "big" {
		t.Errorf("keys = %v, want document order [scope ratio big]", got)
	}

	scope, _ := root.Get("scope")
	if keys := scope.(Table).Keys(); keys[0] != "end" || keys[1] != "beg" {
		t.Errorf("nested keys = %v, want [end beg]", keys)
	}
	if ratio, _ := root.Get("ratio"); ratio != 1.618 {
		t.Errorf("ratio = %#v, want 1.618", ratio)
	}
	if big, _ := root.Get("big"); big != Number("18446744073709551615") {
		t.Errorf("big = %#v, want Number", big)
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ``},
		{"truncated", `{"int": {`},
		{"trailing data", `{} {}`},
		{"duplicate key", `{"a": 1, "a": 2}`},
		{"comment", `{"a": 1 // no comments in strict json
		}`},
		{"float overflow", `1e400`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Decode(JSON, []byte(test.input)); err == nil {
				t.Errorf("Decode(%q) succeeded, want error", test.input)
			}
		})
	}
}

func TestDecodeJSONC(t *testing.T) {
	input := `{
		// the constraint
		"scope": {
			"beg": 1, /* inclusive */
			"end": 100,
		},
	}`
	document, err := Decode(JSONC, []byte(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	scope, _ := document.(Table).Get("scope")
	end, _ := scope.(Table).Get("end")
	if end != Number("100") {
		t.Errorf("end = %#v, want Number(\"100\")", end)
	}
}

func TestIndentJSON(t *testing.T) {
	indented, err := IndentJSON([]byte(`{"a":{"b":1}}`))
	if err != nil {
		t.Fatalf("IndentJSON: %v", err)
	}
	want := "{\n  \"a\": {\n    \"b\": 1\n  }\n}\n"
	if string(indented) != want {
		t.Errorf("got %q, want %q", indented, want)
	}
}
