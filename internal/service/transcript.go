package service

import (
	"strings"

	"github.com/rashmods/helpdesk/internal/gateway"
)

// RenderTranscript renders a channel history, oldest first, as one
// "author: content" line per message.
func RenderTranscript(history []gateway.HistoryEntry) string {
	lines := make([]string, 0, len(history))
	for _, entry := range history {
		lines = append(lines, entry.Author+": "+entry.Content)
	}
	return strings.Join(lines, "\n")
}
