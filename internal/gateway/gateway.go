// Package gateway defines the boundary to the chat platform. The lifecycle
// core never talks to a transport directly; it requests channel and message
// operations through this interface.
package gateway

import (
	"context"
	"errors"

	"github.com/rashmods/helpdesk/internal/domain"
)

// ErrChannelNotFound reports that the underlying channel no longer exists.
// Lifecycle code treats it as non-fatal: a ticket whose channel is already
// gone can still finish its transitions.
var ErrChannelNotFound = errors.New("channel not found")

// Visibility describes who may read and write a ticket channel: the
// requester and the role responsible for the category.
type Visibility struct {
	Requester domain.UserID
	Role      domain.RoleID
}

// HistoryEntry is one message of a channel's history.
type HistoryEntry struct {
	Author  string
	Content string
}

// Gateway is the narrow surface the lifecycle engine needs from the chat
// platform.
type Gateway interface {
	CreateChannel(ctx context.Context, name string, visibility Visibility) (domain.ChannelID, error)
	PostMessage(ctx context.Context, channel domain.ChannelID, text string) error
	// FetchHistory returns the channel's full message history, oldest first.
	FetchHistory(ctx context.Context, channel domain.ChannelID) ([]HistoryEntry, error)
	DeleteChannel(ctx context.Context, channel domain.ChannelID, reason string) error
	ArchiveTranscript(ctx context.Context, destination, transcript string) error
}
