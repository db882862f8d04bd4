package export

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"mentor-ai/backend/internal/model"
)

// MarkdownExporter writes the main branch as a transcript, followed by the
// messages each other branch added after its fork point.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(conv *model.Conversation, w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", conv.Title)
	fmt.Fprintf(&sb, "**Created:** %s  \n", conv.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "**Updated:** %s  \n", conv.UpdatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "**Tokens:** %d\n\n", conv.TotalTokenCount)

	if main := conv.Main(); main != nil {
		writeMessages(&sb, main.Messages)
	}

	for _, branch := range sideBranches(conv) {
		fork := branch.IndexOf(branch.ParentMessageID) + 1
		if fork >= len(branch.Messages) {
			continue
		}
		sb.WriteString("---\n\n")
		fmt.Fprintf(&sb, "## Branch %s\n\n", branch.ID)
		fmt.Fprintf(&sb, "_Forked after message %s_\n\n", branch.ParentMessageID)
		writeMessages(&sb, branch.Messages[fork:])
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}

func (e *MarkdownExporter) ContentType() string {
	return "text/markdown; charset=utf-8"
}

func writeMessages(sb *strings.Builder, msgs []*model.Message) {
	for _, msg := range msgs {
		fmt.Fprintf(sb, "### %s\n\n%s\n\n", roleHeading(msg.Role), msg.Content)
	}
}

func roleHeading(role model.Role) string {
	switch role {
	case model.RoleUser:
		return "User"
	case model.RoleAssistant:
		return "Assistant"
	case model.RoleSystem:
		return "Summary"
	}
	return string(role)
}

// sideBranches returns every branch except main, oldest first.
func sideBranches(conv *model.Conversation) []*model.Branch {
	var out []*model.Branch
	for id, b := range conv.Branches {
		if id != model.MainBranchID {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b *model.Branch) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out
}
