// Package diff computes line-level differences between two revisions of a
// text and derives change statistics from them.
//
// The algorithm is a two-cursor walk with one line of lookahead on each side.
// It is not a minimal edit script: a block move or a change spanning several
// lines is reported as a run of substitutions. Callers that persist diffs or
// statistics rely on this exact behavior, so it must not be swapped for an
// LCS-based diff without re-deriving their fixtures.
package diff

import (
	"fmt"
	"strings"

	"mentor-ai/backend/internal/model"
)

// SplitLines splits content on "\n". Empty content has zero lines.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	return strings.Split(content, "\n")
}

// Compare returns the line diff that turns oldContent into newContent.
func Compare(oldContent, newContent string) []model.DiffLine {
	oldLines := SplitLines(oldContent)
	newLines := SplitLines(newContent)

	result := make([]model.DiffLine, 0, max(len(oldLines), len(newLines)))
	i, j := 0, 0
	for i < len(oldLines) || j < len(newLines) {
		switch {
		case i >= len(oldLines):
			result = append(result, model.DiffLine{Op: model.DiffAdd, Content: newLines[j]})
			j++
		case j >= len(newLines):
			result = append(result, model.DiffLine{Op: model.DiffRemove, Content: oldLines[i]})
			i++
		case oldLines[i] == newLines[j]:
			result = append(result, model.DiffLine{Op: model.DiffUnchanged, Content: oldLines[i]})
			i++
			j++
		case i+1 < len(oldLines) && oldLines[i+1] == newLines[j]:
			// old[i] was deleted
			result = append(result, model.DiffLine{Op: model.DiffRemove, Content: oldLines[i]})
			i++
		case j+1 < len(newLines) && newLines[j+1] == oldLines[i]:
			// new[j] was inserted
			result = append(result, model.DiffLine{Op: model.DiffAdd, Content: newLines[j]})
			j++
		default:
			result = append(result,
				model.DiffLine{Op: model.DiffRemove, Content: oldLines[i]},
				model.DiffLine{Op: model.DiffAdd, Content: newLines[j]},
			)
			i++
			j++
		}
	}
	return result
}

// Stats counts additions and deletions. A remove immediately followed by an
// add counts as one modification in addition to the add and the remove.
func Stats(lines []model.DiffLine) model.ChangeStats {
	var stats model.ChangeStats
	for k, line := range lines {
		switch line.Op {
		case model.DiffAdd:
			stats.Additions++
		case model.DiffRemove:
			stats.Deletions++
			if k+1 < len(lines) && lines[k+1].Op == model.DiffAdd {
				stats.Modifications++
			}
		}
	}
	return stats
}

// Apply replays lines against oldContent and returns the resulting text.
// It fails when an unchanged or removed line does not match oldContent.
func Apply(oldContent string, lines []model.DiffLine) (string, error) {
	oldLines := SplitLines(oldContent)
	out := make([]string, 0, len(oldLines))
	i := 0
	for _, line := range lines {
		switch line.Op {
		case model.DiffAdd:
			out = append(out, line.Content)
		case model.DiffUnchanged, model.DiffRemove:
			if i >= len(oldLines) || oldLines[i] != line.Content {
				return "", fmt.Errorf("diff does not apply at old line %d", i+1)
			}
			if line.Op == model.DiffUnchanged {
				out = append(out, oldLines[i])
			}
			i++
		default:
			return "", fmt.Errorf("unknown diff op %q", line.Op)
		}
	}
	if i != len(oldLines) {
		return "", fmt.Errorf("diff leaves %d old lines unconsumed", len(oldLines)-i)
	}
	return strings.Join(out, "\n"), nil
}

// Unified renders lines with "+", "-" and " " prefixes.
func Unified(lines []model.DiffLine) string {
	var sb strings.Builder
	for _, line := range lines {
		switch line.Op {
		case model.DiffAdd:
			sb.WriteString("+")
		case model.DiffRemove:
			sb.WriteString("-")
		default:
			sb.WriteString(" ")
		}
		sb.WriteString(line.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
