package moderation

import "strings"

// defaultBlocklist backs the offline heuristic: when the remote classifier
// is unavailable, content matching any of these terms is flagged for review.
var defaultBlocklist = []string{
	"idiot",
	"stupid",
	"moron",
	"dumbass",
	"asshole",
	"bastard",
	"bitch",
	"retard",
	"loser",
	"scum",
	"trash",
	"shut up",
	"kill yourself",
	"kys",
	"go to hell",
}

// matchBlocklist scans text case-insensitively and returns the first
// matching term.
func matchBlocklist(text string, blocklist []string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, term := range blocklist {
		if strings.Contains(lowered, term) {
			return term, true
		}
	}
	return "", false
}
