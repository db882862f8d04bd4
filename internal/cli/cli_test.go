package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDiffCmd(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.txt", "a\nb\nc")
	newPath := writeFile(t, dir, "new.txt", "a\nx\nc")

	t.Run("Success - unified output", func(t *testing.T) {
		out, err := execute(t, "diff", oldPath, newPath)
		require.NoError(t, err)
		assert.Equal(t, " a\n-b\n+x\n c\n1 additions, 1 deletions, 1 modifications\n", out)
	})

	t.Run("Success - stats only", func(t *testing.T) {
		out, err := execute(t, "diff", "--stat", oldPath, newPath)
		require.NoError(t, err)
		assert.Equal(t, "1 additions, 1 deletions, 1 modifications\n", out)
	})

	t.Run("Failure - missing file", func(t *testing.T) {
		_, err := execute(t, "diff", oldPath, filepath.Join(dir, "nope.txt"))
		assert.Error(t, err)
	})
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "chat.json", `{
		"id":"c1","title":"Go questions",
		"createdAt":"2024-05-01T12:00:00Z","updatedAt":"2024-05-01T12:00:00Z",
		"totalTokenCount":3,"maxContextTokens":8000,
		"branches":{"main":{"id":"main","createdAt":"2024-05-01T12:00:00Z","messages":[
			{"id":"m1","role":"user","content":"Hi","timestamp":"2024-05-01T12:00:00Z","tokenCount":1},
			{"id":"m2","role":"assistant","content":"Hello!","timestamp":"2024-05-01T12:00:01Z","tokenCount":2,"parentId":"m1"}
		]}}}`)

	t.Run("Success - markdown to stdout", func(t *testing.T) {
		out, err := execute(t, "export", input)
		require.NoError(t, err)
		assert.Contains(t, out, "# Go questions")
		assert.Contains(t, out, "Hello!")
	})

	t.Run("Success - html to file", func(t *testing.T) {
		target := filepath.Join(dir, "chat.html")
		_, err := execute(t, "export", input, "--format", "html", "--output", target)
		require.NoError(t, err)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<title>Go questions</title>")
	})

	t.Run("Failure - unsupported format", func(t *testing.T) {
		_, err := execute(t, "export", input, "--format", "pdf")
		assert.ErrorContains(t, err, "unsupported export format")
	})

	t.Run("Failure - not a conversation", func(t *testing.T) {
		_, err := execute(t, "export", writeFile(t, dir, "bad.json", "{"))
		assert.Error(t, err)
	})
}

func TestModelsCmd(t *testing.T) {
	out, err := execute(t, "models", "--provider", "anthropic")
	require.NoError(t, err)
	assert.Contains(t, out, "PROVIDER")
	assert.Contains(t, out, "claude-3-5-sonnet-20241022")
	assert.NotContains(t, out, "gpt-4o-mini")
}
