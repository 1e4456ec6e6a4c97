// Package dbtest builds gorm handles for repository tests. Statements are
// rendered with the Postgres dialect and recorded, never sent to a server.
package dbtest

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errNoServer = errors.New("dbtest: no database server in dry-run mode")

// Recorder collects the SQL gorm would have executed, with bound values inlined.
type Recorder struct {
	mu         sync.Mutex
	Statements []string
	Committed  int
}

func (r *Recorder) record(sql string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Statements = append(r.Statements, sql)
}

func (r *Recorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *Recorder) Info(context.Context, string, ...interface{}) {}

func (r *Recorder) Warn(context.Context, string, ...interface{}) {}

func (r *Recorder) Error(context.Context, string, ...interface{}) {}

func (r *Recorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, _ := fc()
	r.record(sql)
}

// NewDryRun returns a Postgres-dialect gorm handle in dry-run mode and the
// recorder its statements go to.
func NewDryRun() (*gorm.DB, *Recorder, error) {
	rec := &Recorder{}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: &pool{rec: rec}}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	if err != nil {
		return nil, nil, err
	}
	return db, rec, nil
}

// pool satisfies gorm.ConnPool. Dry-run statements never reach it.
type pool struct {
	rec *Recorder
}

func (p *pool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errNoServer
}

func (p *pool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errNoServer
}

func (p *pool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errNoServer
}

func (p *pool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (p *pool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	return &tx{pool: p}, nil
}

type tx struct {
	*pool
}

func (t *tx) Commit() error {
	t.rec.mu.Lock()
	defer t.rec.mu.Unlock()
	t.rec.Committed++
	return nil
}

func (t *tx) Rollback() error { return nil }
