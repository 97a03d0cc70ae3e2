package sqlite

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB opens a migrated journal on a named shared in-memory database,
// so the writer and reader pools see the same data. Keying the name on the
// test name isolates tests from each other; the percent-encoding keeps it a
// valid SQLite URI filename.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
		url.PathEscape(t.Name()),
	)

	writer, err := open(dsn, 1)
	require.NoError(t, err)

	reader, err := open(dsn, readerPoolSize)
	require.NoError(t, err)

	db := &DB{Writer: writer, Reader: reader}
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(db.Writer))

	return db
}
