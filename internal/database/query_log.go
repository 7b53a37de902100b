package database

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm/logger"
)

// QueryEntry is a single executed SQL statement kept for the debug screen.
type QueryEntry struct {
	ID        int           `json:"id"`
	SQL       string        `json:"sql"`
	Duration  time.Duration `json:"duration"`
	Rows      int64         `json:"rows"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// QueryLog keeps the most recent statements, newest first.
type QueryLog struct {
	mu      sync.RWMutex
	entries []QueryEntry
	max     int
	counter int
}

func NewQueryLog(max int) *QueryLog {
	if max <= 0 {
		max = 200
	}
	return &QueryLog{entries: make([]QueryEntry, 0, max), max: max}
}

func (q *QueryLog) Add(sql string, d time.Duration, rows int64, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.counter++
	e := QueryEntry{ID: q.counter, SQL: sql, Duration: d, Rows: rows, Timestamp: time.Now()}
	if err != nil {
		e.Error = err.Error()
	}
	q.entries = append([]QueryEntry{e}, q.entries...)
	if len(q.entries) > q.max {
		q.entries = q.entries[:q.max]
	}
}

// Recent returns up to n entries; n <= 0 returns all of them.
func (q *QueryLog) Recent(n int) []QueryEntry {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if n <= 0 || n > len(q.entries) {
		n = len(q.entries)
	}
	out := make([]QueryEntry, n)
	copy(out, q.entries[:n])
	return out
}

func (q *QueryLog) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = q.entries[:0]
}

// RecordingLogger forwards to the wrapped gorm logger and records every statement.
type RecordingLogger struct {
	logger.Interface
	Queries *QueryLog
}

func (l *RecordingLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &RecordingLogger{Interface: l.Interface.LogMode(level), Queries: l.Queries}
}

func (l *RecordingLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Interface != nil {
		l.Interface.Trace(ctx, begin, fc, err)
	}
	sql, rows := fc()
	l.Queries.Add(sql, time.Since(begin), rows, err)
}
