// Package notefilter 实现笔记列表的本地过滤
package notefilter

import (
	"strings"

	"github.com/haierkeys/notes-web-client/internal/domain"
)

// Apply filters notes by free-text search and status, preserving order
// Apply 按搜索词与状态过滤笔记，保持原有顺序
//
// 搜索词为空时不过滤；否则对标题与标签做不区分大小写的子串匹配。
// 状态为空时不过滤；否则做相等匹配。
// 输入切片不会被修改。
func Apply(notes []domain.Note, search string, status domain.NoteStatus) []domain.Note {
	lower := strings.ToLower(search)

	filtered := make([]domain.Note, 0, len(notes))
	for _, note := range notes {
		if !matchesSearch(&note, lower) {
			continue
		}
		if status != "" && note.Status != status {
			continue
		}
		filtered = append(filtered, note)
	}
	return filtered
}

func matchesSearch(note *domain.Note, lower string) bool {
	if lower == "" {
		return true
	}
	return strings.Contains(strings.ToLower(note.Title), lower) ||
		strings.Contains(strings.ToLower(note.Tags), lower)
}
