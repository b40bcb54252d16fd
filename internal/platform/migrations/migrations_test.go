package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(postgresFS, "postgres")
	require.NoError(t, err)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	assert.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestEmbeddedMigrationsDeclareUniqueness(t *testing.T) {
	tables, err := fs.ReadFile(postgresFS, "postgres/000001_create_exchange_tables.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(tables), "UNIQUE (exchange_date, reference_currency)")

	rates, err := fs.ReadFile(postgresFS, "postgres/000002_create_currency_rates.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(rates), "UNIQUE (exchange_table_id, currency)")
	assert.Contains(t, string(rates), "NUMERIC(10, 4)")
}
