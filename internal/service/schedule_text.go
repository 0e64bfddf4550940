package service

import (
	"strings"
	"unicode/utf8"
)

const (
	maxScheduleNameLength = 255
	maxCommentLength      = 255

	// ScheduleNamePlaceholder 名称为空时使用的占位名
	ScheduleNamePlaceholder = "（名称未設定）"
)

// truncateRunes 按字符（而非字节）截断
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

// normalizeScheduleName 去除首尾空白并截断，结果为空时返回占位名
func normalizeScheduleName(name string) string {
	name = truncateRunes(strings.TrimSpace(name), maxScheduleNameLength)
	if name == "" {
		return ScheduleNamePlaceholder
	}
	return name
}

// parseCandidateNames 按行拆分候选文本，逐行去除空白（含 \r），丢弃空行并保持原有顺序
func parseCandidateNames(text string) []string {
	lines := strings.Split(text, "\n")
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names
}
