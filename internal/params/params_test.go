package params

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_PreservesFieldOrder(t *testing.T) {
	t.Parallel()

	v, err := ParseBytes([]byte(`{"zeta": 1, "alpha": 2, "mid": 3}`))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	var keys []string
	for _, f := range v.Fields() {
		keys = append(keys, f.Key)
	}

	want := []string{"zeta", "alpha", "mid"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("field order = %v, want %v", keys, want)
	}
}

func TestParse_NumberTextFidelity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		want string
	}{
		{name: "integer", json: `{"v": 20}`, want: "20"},
		{name: "decimal", json: `{"v": 7.5}`, want: "7.5"},
		{name: "large", json: `{"v": 123456789012345}`, want: "123456789012345"},
		{name: "negative", json: `{"v": -3}`, want: "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := ParseBytes([]byte(tt.json))
			if err != nil {
				t.Fatalf("ParseBytes failed: %v", err)
			}

			got, ok := v.Get("v")
			if !ok {
				t.Fatal("key v not found")
			}
			text, ok := got.Text()
			if !ok {
				t.Fatal("number has no text form")
			}
			if text != tt.want {
				t.Errorf("Text() = %q, want %q", text, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
	}{
		{name: "empty input", json: ``},
		{name: "trailing data", json: `{"a": 1} {"b": 2}`},
		{name: "truncated object", json: `{"a": `},
		{name: "bare garbage", json: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseBytes([]byte(tt.json)); err == nil {
				t.Errorf("ParseBytes(%q) succeeded, want error", tt.json)
			}
		})
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		val    Value
		want   string
		wantOK bool
	}{
		{name: "string", val: String("euler"), want: "euler", wantOK: true},
		{name: "int", val: Int(20), want: "20", wantOK: true},
		{name: "whole float", val: Float(20), want: "20", wantOK: true},
		{name: "decimal float", val: Float(7.5), want: "7.5", wantOK: true},
		{name: "bool true", val: Bool(true), want: "true", wantOK: true},
		{name: "bool false", val: Bool(false), want: "false", wantOK: true},
		{name: "null", val: Null(), wantOK: false},
		{name: "array", val: Array(Int(1)), wantOK: false},
		{name: "object", val: Object(KV("a", Int(1))), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.val.Text()
			if ok != tt.wantOK {
				t.Fatalf("Text() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindFirst(t *testing.T) {
	t.Parallel()

	// Duplicate "steps" at two depths: the shallow object field in "1"
	// is reached first by the pre-order walk.
	tree := Object(
		KV("1", Object(
			KV("inputs", Object(
				KV("steps", Int(20)),
				KV("sampler_name", String("euler")),
			)),
		)),
		KV("2", Object(
			KV("inputs", Object(
				KV("steps", Int(99)),
			)),
		)),
	)

	tests := []struct {
		name   string
		key    string
		want   string
		wantOK bool
	}{
		{name: "first match wins", key: "steps", want: "20", wantOK: true},
		{name: "sibling after descent", key: "sampler_name", want: "euler", wantOK: true},
		{name: "missing key", key: "cfg", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, ok := tree.FindFirst(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("FindFirst(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			text, _ := v.Text()
			if text != tt.want {
				t.Errorf("FindFirst(%q) = %q, want %q", tt.key, text, tt.want)
			}
		})
	}
}

func TestFindFirst_OwnFieldsBeforeChildren(t *testing.T) {
	t.Parallel()

	// "seed" exists both as a direct field and nested under an earlier
	// field. Direct fields win over descent.
	tree := Object(
		KV("wrapper", Object(KV("seed", Int(111)))),
		KV("seed", Int(42)),
	)

	v, ok := tree.FindFirst("seed")
	if !ok {
		t.Fatal("FindFirst(seed) not found")
	}
	text, _ := v.Text()
	if text != "42" {
		t.Errorf("FindFirst(seed) = %q, want %q (direct field before descent)", text, "42")
	}
}

func TestFindFirst_ArrayOrder(t *testing.T) {
	t.Parallel()

	tree := Array(
		Object(KV("other", Int(0))),
		Object(KV("seed", Int(1))),
		Object(KV("seed", Int(2))),
	)

	v, ok := tree.FindFirst("seed")
	if !ok {
		t.Fatal("FindFirst(seed) not found")
	}
	text, _ := v.Text()
	if text != "1" {
		t.Errorf("FindFirst(seed) = %q, want %q (index order)", text, "1")
	}
}

func TestLookupNode(t *testing.T) {
	t.Parallel()

	tree := Object(
		KV("5", Object(
			KV("inputs", Object(KV("seed", Int(42)))),
		)),
		KV("6", String("not a node")),
	)

	tests := []struct {
		name   string
		id     string
		input  string
		want   string
		wantOK bool
	}{
		{name: "present", id: "5", input: "seed", want: "42", wantOK: true},
		{name: "missing node", id: "9", input: "seed", wantOK: false},
		{name: "missing input", id: "5", input: "cfg", wantOK: false},
		{name: "node is not an object", id: "6", input: "seed", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, ok := tree.LookupNode(tt.id, tt.input)
			if ok != tt.wantOK {
				t.Fatalf("LookupNode(%q, %q) ok = %v, want %v", tt.id, tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			text, _ := v.Text()
			if text != tt.want {
				t.Errorf("LookupNode(%q, %q) = %q, want %q", tt.id, tt.input, text, tt.want)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()

	v, err := Parse(strings.NewReader(`{
		"1": {"inputs": {"sampler_name": "euler", "steps": 20}},
		"5": {"inputs": {"seed": 42, "steps": 30}}
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	got := v.Keys()
	want := []string{"1", "5", "inputs", "sampler_name", "steps", "seed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestGet_NonObject(t *testing.T) {
	t.Parallel()

	if _, ok := String("x").Get("key"); ok {
		t.Error("Get on a string value should not find anything")
	}
	if _, ok := Array(Int(1)).Get("key"); ok {
		t.Error("Get on an array value should not find anything")
	}
}
