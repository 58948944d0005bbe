package postgres

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRunMigrationsMissingSource(t *testing.T) {
	err := RunMigrations("postgres://localhost:1/db?sslmode=disable", t.TempDir()+"/missing", zerolog.Nop())
	assert.ErrorContains(t, err, "open migrations")
}

func TestMigrationFilesPaired(t *testing.T) {
	ups, err := filepath.Glob("migrations/*.up.sql")
	assert.NoError(t, err)
	downs, err := filepath.Glob("migrations/*.down.sql")
	assert.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups), "every up migration needs a down migration")
}
