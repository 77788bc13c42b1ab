package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/rashmods/helpdesk/internal/domain"
)

type memoryChannel struct {
	name       string
	visibility Visibility
	messages   []HistoryEntry
}

// MemoryGateway is an in-process chat platform used in tests and local
// development. It records every call so assertions can inspect what the
// engine requested.
type MemoryGateway struct {
	mu       sync.Mutex
	channels map[domain.ChannelID]*memoryChannel
	archives map[string][]string
	deleted  map[domain.ChannelID]string
}

// NewMemoryGateway constructs an empty in-memory platform.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		channels: make(map[domain.ChannelID]*memoryChannel),
		archives: make(map[string][]string),
		deleted:  make(map[domain.ChannelID]string),
	}
}

func (g *MemoryGateway) CreateChannel(ctx context.Context, name string, visibility Visibility) (domain.ChannelID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := domain.ChannelID(uuid.NewString())
	g.channels[id] = &memoryChannel{name: name, visibility: visibility}
	return id, nil
}

func (g *MemoryGateway) PostMessage(ctx context.Context, channel domain.ChannelID, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.channels[channel]
	if !ok {
		return fmt.Errorf("post message: %w", ErrChannelNotFound)
	}
	ch.messages = append(ch.messages, HistoryEntry{Author: "helpdesk", Content: text})
	return nil
}

func (g *MemoryGateway) FetchHistory(ctx context.Context, channel domain.ChannelID) ([]HistoryEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.channels[channel]
	if !ok {
		return nil, fmt.Errorf("fetch history: %w", ErrChannelNotFound)
	}
	out := make([]HistoryEntry, len(ch.messages))
	copy(out, ch.messages)
	return out, nil
}

func (g *MemoryGateway) DeleteChannel(ctx context.Context, channel domain.ChannelID, reason string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.channels[channel]; !ok {
		return fmt.Errorf("delete channel: %w", ErrChannelNotFound)
	}
	delete(g.channels, channel)
	g.deleted[channel] = reason
	return nil
}

func (g *MemoryGateway) ArchiveTranscript(ctx context.Context, destination, transcript string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.archives[destination] = append(g.archives[destination], transcript)
	return nil
}

// SeedMessage appends a message authored by a platform user, simulating
// conversation inside the ticket channel.
func (g *MemoryGateway) SeedMessage(channel domain.ChannelID, author, content string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.channels[channel]
	if !ok {
		return ErrChannelNotFound
	}
	ch.messages = append(ch.messages, HistoryEntry{Author: author, Content: content})
	return nil
}

// RegisterChannel records a channel that exists on the platform outside the
// ticket lifecycle, such as the entry channel.
func (g *MemoryGateway) RegisterChannel(id domain.ChannelID, name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.channels[id] = &memoryChannel{name: name}
}

// RemoveChannel drops a channel without recording a deletion, simulating the
// platform removing it out from under the bot.
func (g *MemoryGateway) RemoveChannel(channel domain.ChannelID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.channels, channel)
}

// ChannelName returns the name the channel was created with.
func (g *MemoryGateway) ChannelName(channel domain.ChannelID) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.channels[channel]
	if !ok {
		return "", false
	}
	return ch.name, true
}

// ChannelVisibility returns the visibility rules the channel was created with.
func (g *MemoryGateway) ChannelVisibility(channel domain.ChannelID) (Visibility, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.channels[channel]
	if !ok {
		return Visibility{}, false
	}
	return ch.visibility, true
}

// Messages returns a copy of the channel's messages, oldest first.
func (g *MemoryGateway) Messages(channel domain.ChannelID) []HistoryEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.channels[channel]
	if !ok {
		return nil
	}
	out := make([]HistoryEntry, len(ch.messages))
	copy(out, ch.messages)
	return out
}

// Archived returns the transcripts delivered to a destination.
func (g *MemoryGateway) Archived(destination string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.archives[destination]))
	copy(out, g.archives[destination])
	return out
}

// DeletedReason returns the reason a channel was deleted with.
func (g *MemoryGateway) DeletedReason(channel domain.ChannelID) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	reason, ok := g.deleted[channel]
	return reason, ok
}
