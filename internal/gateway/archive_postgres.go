package gateway

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresArchiver struct {
	Gateway
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// WithPostgresArchive decorates a gateway so archived transcripts are also
// inserted into the transcripts table. A database failure is logged and does
// not fail the archive.
func WithPostgresArchive(inner Gateway, pool *pgxpool.Pool, logger *zap.Logger) Gateway {
	return &postgresArchiver{Gateway: inner, pool: pool, logger: logger}
}

func (a *postgresArchiver) ArchiveTranscript(ctx context.Context, destination, transcript string) error {
	err := a.Gateway.ArchiveTranscript(ctx, destination, transcript)
	const query = `INSERT INTO transcripts (destination, transcript) VALUES ($1, $2)`
	if _, insertErr := a.pool.Exec(ctx, query, destination, transcript); insertErr != nil {
		a.logger.Warn("postgres transcript archive failed",
			zap.String("destination", destination),
			zap.Error(insertErr))
	}
	return err
}
