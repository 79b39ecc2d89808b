package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_EveryUpHasDown(t *testing.T) {
	ups, err := fs.Glob(FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(FS, down)
		assert.NoError(t, err, "missing %s", down)
	}
}

func TestFS_LeadFreeTextColumnsAreUnbounded(t *testing.T) {
	body, err := fs.ReadFile(FS, "000005_widen_lead_columns.up.sql")
	require.NoError(t, err)

	for _, col := range []string{"email", "organization_name", "language", "phone", "org_type", "students_count"} {
		assert.Contains(t, string(body), "ALTER COLUMN "+col+" TYPE TEXT")
	}
}
