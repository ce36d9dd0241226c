package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	migrations, err := Migrations().FindMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 5)

	ids := make([]string, 0, len(migrations))
	for _, m := range migrations {
		ids = append(ids, m.Id)
		assert.NotEmpty(t, m.Up, m.Id)
		assert.NotEmpty(t, m.Down, m.Id)
	}
	assert.Equal(t, "0001_create_users.sql", ids[0])
	assert.Equal(t, "0005_create_check_ins.sql", ids[len(ids)-1])
}

func TestTranscriptViewIsRefreshableConcurrently(t *testing.T) {
	migrations, err := Migrations().FindMigrations()
	require.NoError(t, err)

	var chats string
	for _, m := range migrations {
		if m.Id == "0004_create_chats.sql" {
			chats = strings.Join(m.Up, "\n")
		}
	}
	require.NotEmpty(t, chats)
	assert.Contains(t, chats, "CREATE MATERIALIZED VIEW chat_transcripts")
	assert.Contains(t, chats, "CREATE UNIQUE INDEX idx_chat_transcripts_chat_session_id")
}
