// Package testlog captures log output for assertions in tests.
package testlog

import (
	"sync"

	"service-rider-dispatch/internal/logx"
)

// Entry is one captured log call.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Field returns the value logged under key, searching the newest field first.
func (e Entry) Field(key string) (any, bool) {
	for i := len(e.Fields) - 1; i >= 0; i-- {
		if e.Fields[i].Key == key {
			return e.Fields[i].Value, true
		}
	}
	return nil, false
}

// Recorder collects entries from every logger derived from it.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty Recorder.
func New() *Recorder { return &Recorder{} }

// Logger returns a logx.Logger writing into r.
func (r *Recorder) Logger() logx.Logger {
	return &recLogger{rec: r}
}

// Entries returns a snapshot of everything logged so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

func (r *Recorder) record(level, msg string, scope, fields []logx.Field) {
	all := make([]logx.Field, 0, len(scope)+len(fields))
	all = append(all, scope...)
	all = append(all, fields...)

	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: all})
	r.mu.Unlock()
}

type recLogger struct {
	rec   *Recorder
	scope []logx.Field
}

func (l *recLogger) Debug(msg string, f ...logx.Field) { l.rec.record("debug", msg, l.scope, f) }
func (l *recLogger) Info(msg string, f ...logx.Field)  { l.rec.record("info", msg, l.scope, f) }
func (l *recLogger) Warn(msg string, f ...logx.Field)  { l.rec.record("warn", msg, l.scope, f) }
func (l *recLogger) Error(msg string, f ...logx.Field) { l.rec.record("error", msg, l.scope, f) }

func (l *recLogger) With(f ...logx.Field) logx.Logger {
	scope := make([]logx.Field, 0, len(l.scope)+len(f))
	scope = append(scope, l.scope...)
	scope = append(scope, f...)
	return &recLogger{rec: l.rec, scope: scope}
}

func (l *recLogger) Sync() error { return nil }
