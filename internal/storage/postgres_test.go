package storage

import (
	"testing"

	"github.com/pageza/healthara/backend/internal/testhelpers"
)

func TestSQLStorePostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDB(t)
	exerciseStore(t, NewSQLStore(db, "default"))
}
