package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentor-ai/backend/internal/model"
)

func unchanged(s string) model.DiffLine { return model.DiffLine{Op: model.DiffUnchanged, Content: s} }
func add(s string) model.DiffLine       { return model.DiffLine{Op: model.DiffAdd, Content: s} }
func remove(s string) model.DiffLine    { return model.DiffLine{Op: model.DiffRemove, Content: s} }

func TestCompare(t *testing.T) {
	cases := []struct {
		name string
		old  string
		new  string
		want []model.DiffLine
	}{
		{
			name: "substitution",
			old:  "a\nb\nc",
			new:  "a\nx\nc",
			want: []model.DiffLine{unchanged("a"), remove("b"), add("x"), unchanged("c")},
		},
		{
			name: "deletion detected by lookahead",
			old:  "a\nb\nc",
			new:  "a\nc",
			want: []model.DiffLine{unchanged("a"), remove("b"), unchanged("c")},
		},
		{
			name: "insertion detected by lookahead",
			old:  "a\nc",
			new:  "a\nb\nc",
			want: []model.DiffLine{unchanged("a"), add("b"), unchanged("c")},
		},
		{
			name: "old exhausted",
			old:  "a",
			new:  "a\nb\nc",
			want: []model.DiffLine{unchanged("a"), add("b"), add("c")},
		},
		{
			name: "new exhausted",
			old:  "a\nb",
			new:  "a",
			want: []model.DiffLine{unchanged("a"), remove("b")},
		},
		{
			name: "both empty",
			old:  "",
			new:  "",
			want: []model.DiffLine{},
		},
		{
			name: "from empty",
			old:  "",
			new:  "x\ny",
			want: []model.DiffLine{add("x"), add("y")},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compare(tc.old, tc.new))
		})
	}
}

func TestCompare_RoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"a\nb\nc", "a\nx\nc"},
		{"", "one\ntwo"},
		{"one\ntwo", ""},
		{"a\nb\nc\nd\ne", "e\nd\nc\nb\na"},
		{"x\ny\nz", "y\nz\nx\nw"},
		{"func main() {\n}\n", "package main\n\nfunc main() {\n\tprintln(1)\n}\n"},
		{"same\nsame\nsame", "same\nother\nsame\nsame"},
		{"\n\n", "\n"},
	}
	for _, p := range pairs {
		lines := Compare(p[0], p[1])
		got, err := Apply(p[0], lines)
		require.NoError(t, err)
		assert.Equal(t, p[1], got, "round trip of %q -> %q", p[0], p[1])
	}
}

func TestStats(t *testing.T) {
	stats := Stats(Compare("a\nb\nc", "a\nx\nc\nd"))
	assert.Equal(t, model.ChangeStats{Additions: 2, Deletions: 1, Modifications: 1}, stats)

	first := Stats(Compare("", "l1\nl2\nl3"))
	assert.Equal(t, model.ChangeStats{Additions: 3}, first)
}

func TestApply_Mismatch(t *testing.T) {
	_, err := Apply("a\nb", []model.DiffLine{unchanged("z")})
	assert.Error(t, err)

	_, err = Apply("a\nb", []model.DiffLine{unchanged("a")})
	assert.Error(t, err)
}

func TestUnified(t *testing.T) {
	out := Unified(Compare("a\nb", "a\nc"))
	assert.Equal(t, " a\n-b\n+c\n", out)
}
