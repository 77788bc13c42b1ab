package persistence

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingExecutor struct {
	statements []string
	failOn     string
}

func (e *recordingExecutor) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	if e.failOn != "" && strings.Contains(sql, e.failOn) {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	e.statements = append(e.statements, sql)
	return pgconn.CommandTag{}, nil
}

func TestRunMigrationsAppliesSQLInLexicalOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_index.sql":          {Data: []byte("CREATE INDEX idx ON transcripts (destination);")},
		"001_create_transcripts.sql": {Data: []byte("CREATE TABLE transcripts (id SERIAL);")},
		"notes.txt":                  {Data: []byte("not a migration")},
	}
	db := &recordingExecutor{}

	err := RunMigrations(context.Background(), db, fsys, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, db.statements, 2)
	assert.Contains(t, db.statements[0], "CREATE TABLE transcripts")
	assert.Contains(t, db.statements[1], "CREATE INDEX")
}

func TestRunMigrationsStopsOnFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"001_ok.sql":     {Data: []byte("CREATE TABLE transcripts (id SERIAL);")},
		"002_broken.sql": {Data: []byte("CREATE BROKEN;")},
		"003_never.sql":  {Data: []byte("CREATE TABLE unreached (id SERIAL);")},
	}
	db := &recordingExecutor{failOn: "BROKEN"}

	err := RunMigrations(context.Background(), db, fsys, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_broken.sql")
	require.Len(t, db.statements, 1, "migrations after the failing one must not run")
}

func TestRunMigrationsEmptyDir(t *testing.T) {
	db := &recordingExecutor{}

	err := RunMigrations(context.Background(), db, fstest.MapFS{}, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, db.statements)
}
