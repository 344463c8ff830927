package models

// Contributor represents one contributor to the platform repository
type Contributor struct {
	ID            int64  `json:"id"`
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	HTMLURL       string `json:"html_url"`
	Contributions int    `json:"contributions"`
}

// DefaultContributors is the fallback dataset served when the GitHub
// contributors API is unavailable. It is passed explicitly to the
// contributor service so the enrichment path stays testable without
// network access.
var DefaultContributors = []Contributor{
	{
		ID:            77333941,
		Login:         "Docteur-Parfait",
		AvatarURL:     "https://avatars.githubusercontent.com/u/77333941?v=4",
		HTMLURL:       "https://github.com/Docteur-Parfait",
		Contributions: 25,
	},
	{
		ID:            2,
		Login:         "Community",
		AvatarURL:     "https://avatars.githubusercontent.com/u/1?v=4",
		HTMLURL:       "https://github.com/Docteur-Parfait/os228/graphs/contributors",
		Contributions: 1,
	},
}
