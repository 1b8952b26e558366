package translation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTree(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Node
		wantErr bool
	}{
		{
			name:  "nested strings",
			input: `{"menu": {"a": "X", "b": ""}, "title": "T"}`,
			want: Node{
				"menu":  Node{"a": Leaf("X"), "b": Leaf("")},
				"title": Leaf("T"),
			},
		},
		{
			name:  "empty object",
			input: `{}`,
			want:  Node{},
		},
		{
			name:  "falsy scalars become empty leaves",
			input: `{"n": null, "f": false, "z": 0, "zf": 0.0}`,
			want:  Node{"n": Leaf(""), "f": Leaf(""), "z": Leaf(""), "zf": Leaf("")},
		},
		{
			name:  "other scalars keep their text",
			input: `{"t": true, "i": 42, "d": 1.50}`,
			want:  Node{"t": Leaf("true"), "i": Leaf("42"), "d": Leaf("1.50")},
		},
		{
			name:  "arrays are keyed by index",
			input: `{"list": ["a", {"b": "c"}]}`,
			want:  Node{"list": Node{"0": Leaf("a"), "1": Node{"b": Leaf("c")}}},
		},
		{
			name:    "top level array",
			input:   `["a"]`,
			wantErr: true,
		},
		{
			name:    "top level string",
			input:   `"a"`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			input:   `{"a": `,
			wantErr: true,
		},
		{
			name:    "trailing data",
			input:   `{} {}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTree([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseTree() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTree_NotObject(t *testing.T) {
	_, err := ParseTree([]byte(`[]`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestNodeKeys(t *testing.T) {
	n := Node{"b": Leaf(""), "a": Leaf(""), "B": Leaf(""), "a.b": Leaf("")}
	assert.Equal(t, []string{"B", "a", "a.b", "b"}, n.Keys())
}

func TestNodeLeafCount(t *testing.T) {
	n := Node{
		"a": Leaf("x"),
		"b": Node{"c": Leaf(""), "d": Node{}},
		"e": Node{"f": Node{"g": Leaf("y")}},
	}
	assert.Equal(t, 3, n.LeafCount())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Tree
		want bool
	}{
		{name: "same leaves", a: Leaf("x"), b: Leaf("x"), want: true},
		{name: "different leaves", a: Leaf("x"), b: Leaf("y"), want: false},
		{name: "nil equals empty leaf", a: nil, b: Leaf(""), want: true},
		{name: "leaf vs node", a: Leaf(""), b: Node{}, want: false},
		{name: "node vs leaf", a: Node{}, b: Leaf(""), want: false},
		{
			name: "same nodes",
			a:    Node{"a": Node{"b": Leaf("1")}},
			b:    Node{"a": Node{"b": Leaf("1")}},
			want: true,
		},
		{
			name: "different key sets",
			a:    Node{"a": Leaf("1")},
			b:    Node{"b": Leaf("1")},
			want: false,
		},
		{
			name: "different sizes",
			a:    Node{"a": Leaf("1")},
			b:    Node{"a": Leaf("1"), "b": Leaf("2")},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}
