// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vars

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/vardef/lib/codec"
)

func constraintVariants() []Constraint {
	return []Constraint{{}, Locked, NewScope(1, 10), NewScope(50, 5)}
}

func kindVariants() []Var {
	return []Var{
		String("test_str", "hello \"world\"\n"),
		Bool("test_bool", true),
		Int("test_int", 42),
		Float("test_float", 3.14),
		Float("test_float_phi", 1.618),
	}
}

func TestVarRoundTrip(t *testing.T) {
	for _, format := range codec.Formats {
		for _, base := range kindVariants() {
			for _, constraint := range constraintVariants() {
				v := base.Constrain(constraint)
				t.Run(format.String()+"/"+v.String(), func(t *testing.T) {
					data, err := Marshal(format, v)
					if err != nil {
						t.Fatalf("Marshal: %v", err)
					}
					got, err := Unmarshal[Var](format, data)
					if err != nil {
						t.Fatalf("Unmarshal(%q): %v", data, err)
					}
					if got != v {
						t.Errorf("round trip = %v, want %v", got, v)
					}
				})
			}
		}
	}
}

func TestResolvedRoundTrip(t *testing.T) {
	for _, format := range codec.Formats {
		for _, base := range kindVariants() {
			r := base.Resolve()
			data, err := Marshal(format, r)
			if err != nil {
				t.Fatalf("%s: Marshal(%v): %v", format, r, err)
			}
			got, err := Unmarshal[Resolved](format, data)
			if err != nil || got != r {
				t.Errorf("%s: round trip = %v, %v; want %v", format, got, err, r)
			}
		}
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	collection := Define(
		String("host", "db.internal").Constrain(Locked),
		Int("port", 5432).Constrain(NewScope(1024, 65535)),
		Bool("tls", false),
		Float("timeout", 2),
		Int("port", 6432),
	)
	for _, format := range codec.Formats {
		for _, input := range []Collection{collection, {}} {
			data, err := Marshal(format, input)
			if err != nil {
				t.Fatalf("%s: Marshal: %v", format, err)
			}
			got, err := Unmarshal[Collection](format, data)
			if err != nil {
				t.Fatalf("%s: Unmarshal(%q): %v", format, data, err)
			}
			if !got.Equal(input) {
				t.Errorf("%s: round trip = %v, want %v", format, got.Vars(), input.Vars())
			}
		}
	}
}

func TestDictionaryRoundTrip(t *testing.T) {
	dictionary := Dictionary{
		"zeta":  IntValue("zeta", 1),
		"alpha": StringValue("other_name", "a"),
		"mid":   FloatValue("mid", -0.5),
	}
	for _, format := range codec.Formats {
		for _, input := range []Dictionary{dictionary, NewDictionary()} {
			data, err := Marshal(format, input)
			if err != nil {
				t.Fatalf("%s: Marshal: %v", format, err)
			}
			got, err := Unmarshal[Dictionary](format, data)
			if err != nil {
				t.Fatalf("%s: Unmarshal(%q): %v", format, data, err)
			}
			if !maps.Equal(got, input) {
				t.Errorf("%s: round trip = %v, want %v", format, got, input)
			}
		}
	}
}

func TestConstraintRoundTrip(t *testing.T) {
	for _, format := range codec.Formats {
		for _, constraint := range []Constraint{Locked, NewScope(0, math.MaxUint32)} {
			if format == codec.TOML && constraint.IsLocked() {
				continue
			}
			data, err := Marshal(format, constraint)
			if err != nil {
				t.Fatalf("%s: Marshal(%v): %v", format, constraint, err)
			}
			got, err := Unmarshal[Constraint](format, data)
			if err != nil || got != constraint {
				t.Errorf("%s: round trip = %v, %v; want %v", format, got, err, constraint)
			}
		}
	}
}

func TestMarshalExactJSON(t *testing.T) {
	tests := []struct {
		name string
		data func() ([]byte, error)
		want string
	}{
		{
			name: "bool with scope",
			data: func() ([]byte, error) { return Marshal(codec.JSON, Bool("test_bool", true).Constrain(NewScope(1, 10))) },
			want: `{"bool":{"name":"test_bool","value":true,"constr":{"scope":{"beg":1,"end":10}}}}`,
		},
		{
			name: "locked",
			data: func() ([]byte, error) { return Marshal(codec.JSON, Locked) },
			want: `"locked"`,
		},
		{
			name: "unconstrained",
			data: func() ([]byte, error) { return Marshal(codec.JSON, Int("n", 0)) },
			want: `{"int":{"name":"n","value":0,"constr":null}}`,
		},
		{
			name: "resolved",
			data: func() ([]byte, error) { return Marshal(codec.JSON, FloatValue("pi", 3.14)) },
			want: `{"float":{"name":"pi","value":3.14}}`,
		},
		{
			name: "dictionary sorted by key",
			data: func() ([]byte, error) {
				return Marshal(codec.JSON, Dictionary{"b": IntValue("b", 2), "a": StringValue("a", "x")})
			},
			want: `{"a":{"string":{"name":"a","value":"x"}},"b":{"int":{"name":"b","value":2}}}`,
		},
		{
			name: "collection",
			data: func() ([]byte, error) { return Marshal(codec.JSON, Define(Bool("on", false))) },
			want: `{"vars":[{"bool":{"name":"on","value":false,"constr":null}}]}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := test.data()
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != test.want {
				t.Errorf("got  %s\nwant %s", data, test.want)
			}
		})
	}
}

func TestMarshalExactTOML(t *testing.T) {
	tests := []struct {
		v    Var
		want string
	}{
		{
			String("test_str", "hello").Constrain(Locked),
			"[string]\nname = \"test_str\"\nvalue = \"hello\"\nconstr = \"locked\"\n",
		},
		{
			Bool("test_bool", true).Constrain(NewScope(1, 10)),
			"[bool]\nname = \"test_bool\"\nvalue = true\n\n[bool.constr.scope]\nbeg = 1\nend = 10\n",
		},
		{
			Int("test_int", 42),
			"[int]\nname = \"test_int\"\nvalue = 42\n",
		},
		{
			Float("test_float", 3.14),
			"[float]\nname = \"test_float\"\nvalue = 3.14\n",
		},
	}
	for _, test := range tests {
		data, err := Marshal(codec.TOML, test.v)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", test.v, err)
		}
		if string(data) != test.want {
			t.Errorf("Marshal(%v):\n%s\nwant:\n%s", test.v, data, test.want)
		}
	}
}

func TestMarshalExactYAML(t *testing.T) {
	data, err := Marshal(codec.YAML, String("test_str", "hello").Constrain(Locked))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "string:\n  name: test_str\n  value: hello\n  constr: locked\n"
	if string(data) != want {
		t.Errorf("got:\n%s\nwant:\n%s", data, want)
	}
}

func TestUnmarshalTOMLFixtures(t *testing.T) {
	tests := []struct {
		input string
		want  Var
	}{
		{`
			[string]
			name = "test_str"
			value = "hello"
			constr = "locked"
		`, String("test_str", "hello").Constrain(Locked)},
		{`
			[bool]
			name = "test_bool"
			value = false

			[bool.constr.scope]
			beg = 5
			end = 50
		`, Bool("test_bool", false).Constrain(NewScope(5, 50))},
		{`
			[int]
			name = "test_int"
			value = 100
		`, Int("test_int", 100)},
		{`
			[float]
			name = "test_float"
			value = 1.618
		`, Float("test_float", 1.618)},
	}
	for _, test := range tests {
		got, err := Unmarshal[Var](codec.TOML, []byte(test.input))
		if err != nil {
			t.Errorf("Unmarshal: %v", err)
			continue
		}
		if got != test.want {
			t.Errorf("got %v, want %v", got, test.want)
		}
	}
}

func TestUnmarshalLockedForms(t *testing.T) {
	for _, input := range []string{`"locked"`, `{"locked":null}`} {
		got, err := Unmarshal[Constraint](codec.JSON, []byte(input))
		if err != nil || !got.IsLocked() {
			t.Errorf("Unmarshal(%s) = %v, %v; want locked", input, got, err)
		}
	}

	got, err := Unmarshal[Constraint](codec.JSON, []byte(`{"scope":{"beg":1, "end":100}}`))
	if err != nil || got != NewScope(1, 100) {
		t.Errorf("Unmarshal(scope) = %v, %v", got, err)
	}
}

func TestUnmarshalIntegerLiteralAsFloat(t *testing.T) {
	got, err := Unmarshal[Var](codec.JSON, []byte(`{"float":{"name":"f","value":2}}`))
	if err != nil || got != Float("f", 2) {
		t.Errorf("Unmarshal = %v, %v; want float 2", got, err)
	}
}

func TestUnmarshalIgnoresUnknownPayloadFields(t *testing.T) {
	got, err := Unmarshal[Resolved](codec.JSON, []byte(`{"int":{"name":"n","value":1,"constr":"locked","note":"x"}}`))
	if err != nil || got != IntValue("n", 1) {
		t.Errorf("Unmarshal = %v, %v", got, err)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	type decodeFunc func(codec.Format, []byte) error
	asVar := func(f codec.Format, data []byte) error { _, err := Unmarshal[Var](f, data); return err }
	asConstraint := func(f codec.Format, data []byte) error { _, err := Unmarshal[Constraint](f, data); return err }
	asCollection := func(f codec.Format, data []byte) error { _, err := Unmarshal[Collection](f, data); return err }
	asDictionary := func(f codec.Format, data []byte) error { _, err := Unmarshal[Dictionary](f, data); return err }

	tests := []struct {
		name     string
		decode   decodeFunc
		format   codec.Format
		input    string
		sentinel error
		path     string
	}{
		{"syntax", asVar, codec.JSON, `{"int":`, ErrSyntax, ""},
		{"null var", asVar, codec.JSON, `null`, ErrMissingTag, ""},
		{"empty mapping", asVar, codec.JSON, `{}`, ErrMissingTag, ""},
		{"unknown kind", asVar, codec.JSON, `{"char":{"name":"c","value":"x"}}`, ErrUnknownTag, ""},
		{"unknown bare kind", asVar, codec.JSON, `"char"`, ErrUnknownTag, ""},
		{"bare kind", asVar, codec.JSON, `"int"`, ErrShape, ""},
		{"two tags", asVar, codec.JSON, `{"int":{"name":"a","value":1},"bool":{"name":"b","value":true}}`, ErrShape, ""},
		{"scalar payload", asVar, codec.JSON, `{"int":5}`, ErrShape, "int"},
		{"missing name", asVar, codec.JSON, `{"bool":{"value":true}}`, ErrMissingField, "bool"},
		{"missing value", asVar, codec.JSON, `{"bool":{"name":"b"}}`, ErrMissingField, "bool"},
		{"name type", asVar, codec.JSON, `{"bool":{"name":1,"value":true}}`, ErrShape, "bool.name"},
		{"value type", asVar, codec.JSON, `{"string":{"name":"s","value":1}}`, ErrShape, "string.value"},
		{"no coercion", asVar, codec.JSON, `{"bool":{"name":"b","value":"true"}}`, ErrShape, "bool.value"},
		{"negative int", asVar, codec.JSON, `{"int":{"name":"a","value":-1}}`, ErrOverflow, "int.value"},
		{"fractional int", asVar, codec.JSON, `{"int":{"name":"a","value":1.5}}`, ErrShape, "int.value"},
		{"int overflow", asVar, codec.JSON, `{"int":{"name":"a","value":18446744073709551616}}`, ErrOverflow, "int.value"},
		{"yaml int overflow", asVar, codec.YAML, "int:\n  name: a\n  value: 18446744073709551616\n", ErrOverflow, "int.value"},
		{"yaml negative int", asVar, codec.YAML, "int:\n  name: a\n  value: -3\n", ErrOverflow, "int.value"},
		{"toml int overflow", asVar, codec.TOML, "[int]\nname = \"a\"\nvalue = 18446744073709551616\n", ErrOverflow, ""},
		{"cbor int overflow", asVar, codec.CBOR, "\xa1cint\xa2dnameaaevalue\x20", ErrOverflow, "int.value"},
		{"unknown constraint", asVar, codec.JSON, `{"int":{"name":"a","value":1,"constr":"frozen"}}`, ErrUnknownTag, "int.constr"},
		{"bare scope", asConstraint, codec.JSON, `"scope"`, ErrShape, ""},
		{"scope missing end", asConstraint, codec.JSON, `{"scope":{"beg":1}}`, ErrMissingField, "scope"},
		{"locked payload", asConstraint, codec.JSON, `{"locked":1}`, ErrShape, "locked"},
		{"locked empty mapping", asConstraint, codec.JSON, `{"locked":{}}`, ErrShape, "locked"},
		{"yaml alias cycle", asCollection, codec.YAML, "vars: &a [*a]\n", ErrSyntax, ""},
		{"scope bound type", asConstraint, codec.YAML, "scope:\n  beg: 1\n  end: x\n", ErrShape, "scope.end"},
		{"missing vars", asCollection, codec.JSON, `{"items":[]}`, ErrMissingField, ""},
		{"vars not a sequence", asCollection, codec.JSON, `{"vars":{}}`, ErrShape, "vars"},
		{
			"nested path", asCollection, codec.JSON,
			`{"vars":[{"int":{"name":"a","value":1}},{"int":{"name":"b","value":1,"constr":{"scope":{"beg":1,"end":"x"}}}}]}`,
			ErrShape, "vars[1].int.constr.scope.end",
		},
		{"element tag", asCollection, codec.TOML, "[[vars]]\n[vars.char]\nname = \"c\"\n", ErrUnknownTag, "vars[0]"},
		{"dictionary entry", asDictionary, codec.JSON, `{"a":{"int":{"name":"a"}}}`, ErrMissingField, "a.int"},
		{"dictionary root", asDictionary, codec.JSON, `[1]`, ErrShape, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.decode(test.format, []byte(test.input))
			if err == nil {
				t.Fatalf("decode(%s) succeeded", test.input)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("error %v is %T, want *ParseError", err, err)
			}
			if !errors.Is(err, test.sentinel) {
				t.Errorf("error %v does not wrap %v", err, test.sentinel)
			}
			if parseErr.Path != test.path {
				t.Errorf("Path = %q, want %q", parseErr.Path, test.path)
			}
			if parseErr.Format != test.format {
				t.Errorf("Format = %v, want %v", parseErr.Format, test.format)
			}
		})
	}
}

func TestUnmarshalTOMLIntegerBeyondInt64(t *testing.T) {
	data, err := Marshal(codec.TOML, Int("big", math.MaxUint64))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	_, err = Unmarshal[Var](codec.TOML, data)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Unmarshal = %v, want *ParseError", err)
	}
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("Unmarshal = %v, want ErrOverflow", err)
	}
}

func TestUnmarshalYAMLAliases(t *testing.T) {
	input := "vars:\n" +
		"  - &shared\n" +
		"    int:\n" +
		"      name: depth\n" +
		"      value: 4\n" +
		"      constr: &window\n" +
		"        scope: {beg: 1, end: 8}\n" +
		"  - string:\n" +
		"      name: label\n" +
		"      value: x\n" +
		"      constr: *window\n" +
		"  - *shared\n"
	got, err := Unmarshal[Collection](codec.YAML, []byte(input))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := Define(
		Int("depth", 4).Constrain(NewScope(1, 8)),
		String("label", "x").Constrain(NewScope(1, 8)),
		Int("depth", 4).Constrain(NewScope(1, 8)),
	)
	if !got.Equal(want) {
		t.Errorf("Unmarshal = %v, want %v", got, want)
	}
}

func TestUnmarshalYAMLAliasExpansionLimit(t *testing.T) {
	// Nine levels of ten aliases each expand to 10^9 nodes.
	input := "a0: &a0 [1, 1, 1, 1, 1, 1, 1, 1, 1, 1]\n"
	for level := 1; level <= 9; level++ {
		previous := fmt.Sprintf("*a%d", level-1)
		input += fmt.Sprintf("a%d: &a%d [%s]\n", level, level,
			strings.TrimSuffix(strings.Repeat(previous+", ", 10), ", "))
	}
	input += "vars: [*a9]\n"

	_, err := Unmarshal[Collection](codec.YAML, []byte(input))
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("Unmarshal = %v, want ErrSyntax", err)
	}
}

func TestMarshalErrors(t *testing.T) {
	if _, err := Marshal(codec.JSON, Float("f", math.NaN())); err == nil {
		t.Error("JSON NaN should fail")
	}
	if _, err := Marshal(codec.TOML, Locked); err == nil {
		t.Error("bare Locked as TOML document should fail")
	}
	if _, err := Marshal(codec.JSON, Var{}); err == nil {
		t.Error("zero Var should fail")
	}
	if _, err := Marshal(codec.YAML, Define(Int("a", 1), Var{})); err == nil {
		t.Error("collection with a zero Var should fail")
	}
	if _, err := Marshal(codec.CBOR, Constraint{}); err == nil {
		t.Error("zero Constraint should fail")
	}
}

func TestNonFiniteFloats(t *testing.T) {
	for _, format := range []codec.Format{codec.TOML, codec.YAML, codec.CBOR} {
		for _, value := range []float64{math.Inf(1), math.Inf(-1)} {
			v := Float("f", value)
			data, err := Marshal(format, v)
			if err != nil {
				t.Fatalf("%s: Marshal(%v): %v", format, value, err)
			}
			got, err := Unmarshal[Var](format, data)
			if err != nil || got != v {
				t.Errorf("%s: round trip = %v, %v; want %v", format, got, err, v)
			}
		}
	}
}

type serviceConfig struct {
	Port     Var        `json:"port" yaml:"port"`
	Defaults Collection `json:"defaults" yaml:"defaults"`
	Resolved Dictionary `json:"resolved,omitempty" yaml:"resolved,omitempty"`
}

func sampleServiceConfig() serviceConfig {
	return serviceConfig{
		Port:     Int("port", 8080).Constrain(NewScope(1024, 65535)),
		Defaults: Define(String("host", "localhost"), Bool("debug", false).Constrain(Locked)),
		Resolved: Dictionary{"port": IntValue("port", 8080)},
	}
}

func TestEmbeddedJSON(t *testing.T) {
	config := sampleServiceConfig()
	data, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var decoded serviceConfig
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal(%s): %v", data, err)
	}
	if decoded.Port != config.Port || !decoded.Defaults.Equal(config.Defaults) || !maps.Equal(decoded.Resolved, config.Resolved) {
		t.Errorf("decoded = %+v, want %+v", decoded, config)
	}

	var untouched serviceConfig
	untouched.Port = Bool("keep", true)
	if err := json.Unmarshal([]byte(`{"port":null}`), &untouched); err != nil {
		t.Fatalf("json.Unmarshal(null): %v", err)
	}
	if untouched.Port != Bool("keep", true) {
		t.Errorf("null overwrote the field: %v", untouched.Port)
	}

	err = json.Unmarshal([]byte(`{"port":{"int":{"name":"port","value":-3}}}`), &decoded)
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("json.Unmarshal(negative) = %v, want ErrOverflow", err)
	}
}

func TestEmbeddedYAML(t *testing.T) {
	config := sampleServiceConfig()
	data, err := yaml.Marshal(config)
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	var decoded serviceConfig
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("yaml.Unmarshal(%s): %v", data, err)
	}
	if decoded.Port != config.Port || !decoded.Defaults.Equal(config.Defaults) || !maps.Equal(decoded.Resolved, config.Resolved) {
		t.Errorf("decoded = %+v, want %+v", decoded, config)
	}

	err = yaml.Unmarshal([]byte("port:\n  char:\n    name: c\n"), &decoded)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Format != codec.YAML || !errors.Is(err, ErrUnknownTag) {
		t.Errorf("yaml.Unmarshal(unknown tag) = %v", err)
	}
}

func TestEmbeddedCBOR(t *testing.T) {
	config := sampleServiceConfig()
	data, err := codec.Marshal(config)
	if err != nil {
		t.Fatalf("codec.Marshal: %v", err)
	}
	var decoded serviceConfig
	if err := codec.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("codec.Unmarshal: %v", err)
	}
	if decoded.Port != config.Port || !decoded.Defaults.Equal(config.Defaults) || !maps.Equal(decoded.Resolved, config.Resolved) {
		t.Errorf("decoded = %+v, want %+v", decoded, config)
	}
}
