package types

import (
	"errors"
	"testing"
)

func TestValidateRange(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in Range
		ok bool
	}{
		{RangeWeek, true}, {RangeMonth, true}, {"", false}, {"year", false}, {"Week", false},
	}
	for _, c := range cases {
		err := ValidateRange(c.in)
		if c.ok && err != nil {
			t.Fatalf("expected ok for %q, got %v", c.in, err)
		}
		if !c.ok && !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange for %q, got %v", c.in, err)
		}
	}
}

func TestValidateID(t *testing.T) {
	t.Parallel()
	if err := ValidateID(1, "entryId"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []int64{0, -3} {
		if err := ValidateID(id, "entryId"); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID for %d, got %v", id, err)
		}
	}
}

func TestValidateContent(t *testing.T) {
	t.Parallel()
	if err := ValidateContent("today was calm"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateContent(" \n\t"); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}
