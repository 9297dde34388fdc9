package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Skotchmaster/inventory/internal/logging"
)

// slowQuery is the duration above which a query is logged at warn.
const slowQuery = 500 * time.Millisecond

// queryLogger sends gorm's output to the slog logger carried by the
// statement context. Query parameters are never logged and a missing
// record is not an error.
type queryLogger struct {
	level gormlogger.LogLevel
	slow  time.Duration
}

func newQueryLogger() *queryLogger {
	return &queryLogger{level: gormlogger.Warn, slow: slowQuery}
}

func (q *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *q
	c.level = level
	return &c
}

func (q *queryLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if q.level >= gormlogger.Info {
		logging.FromContext(ctx).Info("gorm: " + fmt.Sprintf(msg, data...))
	}
}

func (q *queryLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if q.level >= gormlogger.Warn {
		logging.FromContext(ctx).Warn("gorm: " + fmt.Sprintf(msg, data...))
	}
}

func (q *queryLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if q.level >= gormlogger.Error {
		logging.FromContext(ctx).Error("gorm: " + fmt.Sprintf(msg, data...))
	}
}

func (q *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if q.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	l := logging.FromContext(ctx)

	switch {
	case err != nil && q.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.Error("db_query_failed", "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds(), "error", err)
	case q.slow > 0 && elapsed > q.slow && q.level >= gormlogger.Warn:
		sql, rows := fc()
		l.Warn("db_query_slow", "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	case q.level >= gormlogger.Info:
		sql, rows := fc()
		l.Debug("db_query", "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	}
}

// ParamsFilter keeps bound values (password hashes among them) out of logged SQL.
func (q *queryLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}
