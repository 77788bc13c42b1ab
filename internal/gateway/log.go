package gateway

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rashmods/helpdesk/internal/domain"
)

// LogGateway is the runtime fallback when no chat-platform binding is
// configured. It allocates handles and logs every requested operation so the
// lifecycle can be exercised end to end without a platform connection.
type LogGateway struct {
	logger *zap.Logger
}

// NewLogGateway constructs the logging gateway.
func NewLogGateway(logger *zap.Logger) *LogGateway {
	return &LogGateway{logger: logger}
}

func (g *LogGateway) CreateChannel(ctx context.Context, name string, visibility Visibility) (domain.ChannelID, error) {
	id := domain.ChannelID(uuid.NewString())
	g.logger.Info("create channel",
		zap.String("channel_id", string(id)),
		zap.String("name", name),
		zap.String("requester", string(visibility.Requester)),
		zap.String("role", string(visibility.Role)))
	return id, nil
}

func (g *LogGateway) PostMessage(ctx context.Context, channel domain.ChannelID, text string) error {
	g.logger.Info("post message",
		zap.String("channel_id", string(channel)),
		zap.String("text", text))
	return nil
}

func (g *LogGateway) FetchHistory(ctx context.Context, channel domain.ChannelID) ([]HistoryEntry, error) {
	g.logger.Debug("fetch history", zap.String("channel_id", string(channel)))
	return nil, nil
}

func (g *LogGateway) DeleteChannel(ctx context.Context, channel domain.ChannelID, reason string) error {
	g.logger.Info("delete channel",
		zap.String("channel_id", string(channel)),
		zap.String("reason", reason))
	return nil
}

func (g *LogGateway) ArchiveTranscript(ctx context.Context, destination, transcript string) error {
	g.logger.Info("archive transcript",
		zap.String("destination", destination),
		zap.Int("transcript_bytes", len(transcript)))
	return nil
}
