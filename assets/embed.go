package assets

import (
	"embed"
	"strings"
)

//go:embed messages/*.txt
var MessagesFS embed.FS

// Default reminder texts, one per recipient kind.
const (
	DirectMessage = "direct.txt"
	GroupMessage  = "group.txt"
)

// Message returns the embedded text with trailing newlines removed,
// or "" if name is unknown.
func Message(name string) string {
	b, err := MessagesFS.ReadFile("messages/" + name)
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(b), "\n")
}
