package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashmods/helpdesk/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "helpdesk-bot", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())

	assert.Equal(t, []string{"Mods Related", "Other Query", "Bugs", "Suggestions", "Feedback"}, cfg.Ticket.Categories)
	assert.Equal(t, "ticket-logs", cfg.Ticket.LogDestination)
	assert.Equal(t, 10*time.Minute, cfg.Ticket.IdleTimeout())
	assert.Equal(t, 15*time.Minute, cfg.Ticket.EscalationDelay())
	assert.Equal(t, 5*time.Minute, cfg.Ticket.RetentionDelay())

	assert.Empty(t, cfg.Postgres.DSN)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("TICKET_CATEGORIES", "Bugs, Billing ,")
	t.Setenv("TICKET_IDLE_TIMEOUT_SECONDS", "120")
	t.Setenv("TICKET_LOG_DESTINATION", "audit-log")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, []string{"Bugs", "Billing"}, cfg.Ticket.Categories)
	assert.Equal(t, 2*time.Minute, cfg.Ticket.IdleTimeout())
	assert.Equal(t, "audit-log", cfg.Ticket.LogDestination)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadCategoryRoles(t *testing.T) {
	t.Setenv("TICKET_CATEGORIES", "Bugs,Billing,Feedback")
	t.Setenv("TICKET_DEFAULT_ROLE_ID", "mods")
	t.Setenv("TICKET_CATEGORY_ROLES", "Bugs=devs, Billing=finance")

	cfg, err := Load()
	require.NoError(t, err)

	role, ok := cfg.Ticket.RoleFor("Bugs")
	require.True(t, ok)
	assert.Equal(t, domain.RoleID("devs"), role)

	role, ok = cfg.Ticket.RoleFor("Billing")
	require.True(t, ok)
	assert.Equal(t, domain.RoleID("finance"), role)

	role, ok = cfg.Ticket.RoleFor("Feedback")
	require.True(t, ok, "category without an explicit pair uses the default role")
	assert.Equal(t, domain.RoleID("mods"), role)
}

func TestLoadRejectsMalformedCategoryRoles(t *testing.T) {
	t.Setenv("TICKET_CATEGORY_ROLES", "Bugs")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TICKET_CATEGORY_ROLES")
}

func TestLoadRejectsEmptyCategoryList(t *testing.T) {
	t.Setenv("TICKET_CATEGORIES", " , ,")

	_, err := Load()
	require.Error(t, err)
}

func TestHasCategory(t *testing.T) {
	tc := TicketConfig{Categories: []string{"Bugs", "Other Query"}}

	assert.True(t, tc.HasCategory("Bugs"))
	assert.True(t, tc.HasCategory("Other Query"))
	assert.False(t, tc.HasCategory("bugs"), "category matching is case sensitive")
	assert.False(t, tc.HasCategory("Unknown"))
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("HELPERS_INT", "not-a-number")
	t.Setenv("HELPERS_BOOL", "yes-please")

	assert.Equal(t, 7, getEnvAsInt("HELPERS_INT", 7), "unparsable int falls back")
	assert.True(t, getEnvAsBool("HELPERS_BOOL", true), "unparsable bool falls back")
	assert.Equal(t, "fallback", getEnv("HELPERS_MISSING", "fallback"))
}
