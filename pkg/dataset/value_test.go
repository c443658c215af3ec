package dataset

import "testing"

func TestValueEqual(t *testing.T) {
	if !Null().Equal(Null()) {
		t.Error("two nulls should compare equal")
	}
	if Null().Equal(NewValue("")) {
		t.Error("null and empty string are distinct values")
	}
	if !NewValue("a").Equal(NewValue("a")) {
		t.Error("equal strings should compare equal")
	}
	if NewValue("a").Equal(NewValue("b")) {
		t.Error("different strings should not compare equal")
	}
}

func TestValueString(t *testing.T) {
	if got := Null().String(); got != "" {
		t.Errorf("null should render empty, got %q", got)
	}
	if got := NewValue("x").String(); got != "x" {
		t.Errorf("expected x, got %q", got)
	}
}
