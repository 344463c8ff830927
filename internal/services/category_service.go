package services

import "strings"

// DefaultCategory is assigned when no keyword rule matches
const DefaultCategory = "Open Source"

// categoryRules are evaluated in order; the first matching rule wins.
// The order is significant: a project matching both "react" and "ml"
// is Web Development because that rule is tested first.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{"Web Development", []string{"web", "react", "vue", "angular"}},
	{"Mobile Development", []string{"mobile", "flutter", "react-native", "swift", "kotlin"}},
	{"Desktop Application", []string{"desktop", "electron", "qt"}},
	{"DevOps", []string{"devops", "docker", "kubernetes", "ci/cd"}},
	{"Data Science", []string{"data", "machine", "ai", "ml"}},
	{"Developer Tools", []string{"tool", "cli", "utility"}},
}

// Categorize classifies a project from its primary language and topic tags.
// It is deterministic and total; unmatched input yields DefaultCategory.
func Categorize(language string, topics []string) string {
	blob := strings.ToLower(language + " " + strings.Join(topics, " "))

	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(blob, keyword) {
				return rule.category
			}
		}
	}
	return DefaultCategory
}
