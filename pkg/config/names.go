package config

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// SuggestName 在候选名称中找出与 name 编辑距离最近的一个
//
// 用于配置错误诊断（"unknown bait "wrom" (did you mean "worm"?)"）。
// 距离超过名称长度的一半时认为没有合理建议，返回空字符串。
func SuggestName(name string, candidates []string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return ""
	}

	best := ""
	bestDistance := -1
	for _, candidate := range candidates {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(candidate))
		if bestDistance < 0 || d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}

	limit := len(needle) / 2
	if limit < 1 {
		limit = 1
	}
	if bestDistance < 0 || bestDistance > limit {
		return ""
	}
	return best
}

// describeUnknown 生成带建议的 "未知名称" 描述
func describeUnknown(name string, candidates []string) string {
	if suggestion := SuggestName(name, candidates); suggestion != "" && suggestion != name {
		return "\"" + name + "\" (did you mean \"" + suggestion + "\"?)"
	}
	return "\"" + name + "\""
}
