package compare

import "testing"

func TestParseNumeral(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"一":     1,
		"十":     10,
		"十一":    11,
		"二十":    20,
		"一百零五":  105,
		"一千":    1000,
		"三百二十一": 321,
		"一萬零一":  10001,
		"":      0,
	}
	for in, want := range cases {
		if got := ParseNumeral(in); got != want {
			t.Errorf("ParseNumeral(%q) = %d, want %d", in, got, want)
		}
	}
}
