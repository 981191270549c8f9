package service

import (
	"reflect"
	"testing"
)

func TestMergeDataNewValuesWin(t *testing.T) {
	stored := map[string]any{"name": "Ana", "role": "cto"}
	incoming := map[string]any{"role": "ceo", "city": "cdmx"}

	got := MergeData(stored, incoming)
	want := map[string]any{"name": "Ana", "role": "ceo", "city": "cdmx"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected merge: %+v", got)
	}

	// Inputs stay untouched.
	if stored["role"] != "cto" || len(incoming) != 2 {
		t.Fatalf("merge mutated its inputs: %+v %+v", stored, incoming)
	}
}

func TestMergeDataHandlesNilInputs(t *testing.T) {
	if got := MergeData(nil, nil); len(got) != 0 || got == nil {
		t.Fatalf("expected empty non-nil map, got %#v", got)
	}
	got := MergeData(nil, map[string]any{"a": 1})
	if got["a"] != 1 {
		t.Fatalf("incoming fields lost: %+v", got)
	}
}
