package service

import (
	"reflect"
	"testing"
)

func TestParseCandidateNames(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"空文本", "", []string{}},
		{"单行", "Day1", []string{"Day1"}},
		{"CRLF 换行", "Day1\r\nDay2\r\n", []string{"Day1", "Day2"}},
		{"丢弃空行", "\n\nA\n  \nB\n", []string{"A", "B"}},
		{"保留行内空格", "  10/1 19:00 ~  ", []string{"10/1 19:00 ~"}},
		{"不排序不去重", "b\na\nb", []string{"b", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCandidateNames(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("期望 %q，实际 %q", tt.want, got)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("日本語テキスト", 3); got != "日本語" {
		t.Errorf("期望按字符截断，实际=%q", got)
	}
	if got := truncateRunes("abc", 5); got != "abc" {
		t.Errorf("短字符串不应变化，实际=%q", got)
	}
}
