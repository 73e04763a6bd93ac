package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRecorder is a DBTX that records Exec statements and can fail on a given call.
type execRecorder struct {
	stmts  []string
	failAt int // 1-based; 0 never fails
}

func (r *execRecorder) Exec(_ context.Context, sql string, _ ...interface{}) (pgconn.CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	if r.failAt == len(r.stmts) {
		return pgconn.CommandTag{}, errors.New("disk full")
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (r *execRecorder) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (r *execRecorder) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func TestSchemaStatements_AreNonDestructive(t *testing.T) {
	for _, stmt := range schemaStatements {
		upper := strings.ToUpper(stmt)
		assert.Contains(t, upper, "IF NOT EXISTS", stmt)
		assert.NotContains(t, upper, "DROP ", stmt)
		assert.NotContains(t, upper, "TRUNCATE", stmt)
	}
}

func TestSchemaStatements_ItemsReferenceBusiness(t *testing.T) {
	var items string
	for _, stmt := range schemaStatements {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS items") {
			items = stmt
		}
	}
	require.NotEmpty(t, items)
	assert.Contains(t, items, "REFERENCES business(id)")
	assert.Contains(t, items, "business_id      BIGINT NOT NULL")
}

func TestCreateSchema_RunsEveryStatement(t *testing.T) {
	rec := &execRecorder{}

	require.NoError(t, New(rec).CreateSchema(context.Background()))
	require.NoError(t, New(rec).CreateSchema(context.Background()))

	assert.Len(t, rec.stmts, 2*len(schemaStatements))
}

func TestCreateSchema_StopsOnFailure(t *testing.T) {
	rec := &execRecorder{failAt: 1}

	err := New(rec).CreateSchema(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, rec.stmts, 1)
}
