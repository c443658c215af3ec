package hierarchy

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"Sales", "sales"},
		{"ＡＢＣ", "abc"},      // fullwidth latin folds to ascii
		{"ｶﾌﾞｼｷ", "カブシキ"},    // halfwidth katakana widens
		{"Sales ", "sales "}, // whitespace is preserved
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
