package mcpserver

import (
	"reflect"
	"strings"
	"testing"

	"github.com/quirelabs/quire/internal/api"
	"github.com/quirelabs/quire/internal/testutil"
)

func TestNewRegistersServer(t *testing.T) {
	srv := New(api.NewService(testutil.TestManager(t)))
	if srv.MCPServer() == nil {
		t.Fatal("underlying MCP server is nil")
	}
}

func TestSplitTags(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a,b", []string{"a", "b"}},
		{" a , b ,", []string{"a", "b"}},
		{",,", nil},
	}
	for _, tc := range cases {
		got := splitTags(tc.raw)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitTags(%q) = %#v, want %#v", tc.raw, got, tc.want)
		}
	}
}

func TestContractDescribesFileNames(t *testing.T) {
	if !strings.Contains(NoteFormatContract, "-42.md") {
		t.Error("contract does not show the derived file name form")
	}
}
