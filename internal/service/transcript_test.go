package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rashmods/helpdesk/internal/gateway"
)

func TestRenderTranscript(t *testing.T) {
	history := []gateway.HistoryEntry{
		{Author: "alice", Content: "my game crashes on load"},
		{Author: "mod-bob", Content: "which mod version?"},
		{Author: "alice", Content: "v2.1"},
	}

	assert.Equal(t,
		"alice: my game crashes on load\nmod-bob: which mod version?\nalice: v2.1",
		RenderTranscript(history))
}

func TestRenderTranscriptEmptyHistory(t *testing.T) {
	assert.Equal(t, "", RenderTranscript(nil))
}
