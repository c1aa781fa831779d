package shell

import (
	"reflect"
	"testing"
)

func TestParseArgs(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"ls", []string{"ls"}},
		{"mkdir new folder", []string{"mkdir", "new", "folder"}},
		{`mkdir "new folder"`, []string{"mkdir", "new folder"}},
		{`touch "a b" c "d e"`, []string{"touch", "a b", "c", "d e"}},
		{`rename 3 ""`, []string{"rename", "3"}},
		{`search --tag "to do"`, []string{"search", "--tag", "to do"}},
	}
	for _, tc := range cases {
		if got := parseArgs(tc.input); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseArgs(%q) = %#v, want %#v", tc.input, got, tc.want)
		}
	}
}
