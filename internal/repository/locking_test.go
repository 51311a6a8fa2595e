package repository

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqlRecorder captures every statement gorm builds, so the locking clauses on
// the stock and counter reads can be asserted without a live database.
type sqlRecorder struct {
	mu    sync.Mutex
	stmts []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{})    {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.stmts = append(r.stmts, sql)
	r.mu.Unlock()
}

// lockedSelect reports whether a SELECT against the table was built with a
// row lock.
func (r *sqlRecorder) lockedSelect(table string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stmt := range r.stmts {
		if strings.Contains(stmt, `FROM "`+table+`"`) && strings.Contains(stmt, "FOR UPDATE") {
			return true
		}
	}
	return false
}

// dryRunDB builds statements without connecting or executing anything.
func dryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()

	rec := &sqlRecorder{}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=pos password=pos dbname=pos port=5432 sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 rec,
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, rec
}

func TestNextNumber_ReadsCounterRowForUpdate(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewSaleRepo(db)

	_, err := repo.NextNumber(db)
	require.NoError(t, err)
	require.True(t, rec.lockedSelect("sale_counters"),
		"counter read must lock the row, got: %v", rec.stmts)
}

func TestLockVariantBySKU_ReadsVariantForUpdate(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewProductRepo(db)

	_, err := repo.LockVariantBySKU(db, "VES-001")
	require.NoError(t, err)
	require.True(t, rec.lockedSelect("product_variants"),
		"variant read must lock the row, got: %v", rec.stmts)
}

func TestLockByID_ReadsSaleForUpdate(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewSaleRepo(db)

	_, err := repo.LockByID(db, 1)
	require.NoError(t, err)
	require.True(t, rec.lockedSelect("sales"),
		"sale read must lock the row, got: %v", rec.stmts)
}
