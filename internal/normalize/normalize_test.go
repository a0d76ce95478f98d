package normalize

import (
	"reflect"
	"testing"
)

func TestTagName(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"article", "article", true},
		{"h1", "h1", true},
		{"font-face", "font-face", true},
		{"", "", false},
		{"foo bar", "", false},
		{" div", "", false},
		{"span\n", "", false},
		{"a\tb", "", false},
		{"x y", "", false},
	}

	for _, tt := range tests {
		got, ok := TagName(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("TagName(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTagNames(t *testing.T) {
	got := TagNames([]string{"a", "", "foo bar", "div", "a"})
	want := []string{"a", "div", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagNames() = %v, want %v", got, want)
	}

	if got := TagNames(nil); got != nil {
		t.Errorf("TagNames(nil) = %v, want nil", got)
	}
}
