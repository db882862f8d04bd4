package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEScanner(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []sseEvent
	}{
		{
			name:  "typed events",
			input: "event: message_start\ndata: {\"a\":1}\n\nevent: ping\ndata: {}\n\n",
			want:  []sseEvent{{Type: "message_start", Data: `{"a":1}`}, {Type: "ping", Data: "{}"}},
		},
		{
			name:  "multiple data lines are joined",
			input: "data: one\ndata: two\n\n",
			want:  []sseEvent{{Data: "one\ntwo"}},
		},
		{
			name:  "comments and unknown fields are skipped",
			input: ": keep-alive\nid: 7\nretry: 100\ndata: x\n\n",
			want:  []sseEvent{{Data: "x"}},
		},
		{
			name:  "consecutive blank lines",
			input: "\n\n\ndata: a\n\n\n\ndata: b\n\n",
			want:  []sseEvent{{Data: "a"}, {Data: "b"}},
		},
		{
			name:  "CRLF line endings",
			input: "data: a\r\n\r\n",
			want:  []sseEvent{{Data: "a"}},
		},
		{
			name:  "no trailing blank line",
			input: "data: [DONE]",
			want:  []sseEvent{{Data: "[DONE]"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			scanner := newSSEScanner(strings.NewReader(tc.input))

			var got []sseEvent
			for scanner.Next() {
				got = append(got, scanner.Event())
			}

			require.NoError(t, scanner.Err())
			assert.Equal(t, tc.want, got)
		})
	}
}
