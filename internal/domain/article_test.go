package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestCoerceID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want int64
		ok   bool
	}{
		{json.Number("42"), 42, true},
		{float64(7), 7, true},
		{float64(7.5), 0, false},
		{"13", 13, true},
		{"thirteen", 0, false},
		{nil, 0, false},
		{[]any{}, 0, false},
	}

	for _, tc := range cases {
		got, ok := CoerceID(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("CoerceID(%v) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDescriptorFromValue(t *testing.T) {
	t.Parallel()

	d, ok := DescriptorFromValue(map[string]any{"id": json.Number("5"), "kind": "news"})
	if !ok {
		t.Fatal("expected a descriptor")
	}
	if d.ID != "5" {
		t.Fatalf("id = %q, want 5", d.ID)
	}
	if d.Fields["kind"] != "news" {
		t.Fatal("catalog metadata lost")
	}

	if _, ok := DescriptorFromValue("not an object"); ok {
		t.Fatal("non-object catalog entry must be rejected")
	}
	if _, ok := DescriptorFromValue(map[string]any{"name": "x"}); ok {
		t.Fatal("entry without id must be rejected")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("missing publication date")
	verr := &ValidationError{Record: RawRecord{"id": json.Number("9")}, Err: cause}

	if !strings.Contains(verr.Error(), "record 9") {
		t.Fatalf("error = %q, want record id in message", verr.Error())
	}
	if !errors.Is(verr, cause) {
		t.Fatal("Unwrap must expose the underlying failure")
	}
}
