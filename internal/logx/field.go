package logx

import "time"

// Field is one key/value pair of a log entry.
type Field struct {
	Key   string
	Value any
}

// ErrorKey is the key Err logs under.
const ErrorKey = "error"

func String(key, value string) Field                 { return Field{key, value} }
func Int(key string, value int) Field                { return Field{key, value} }
func Int64(key string, value int64) Field            { return Field{key, value} }
func Float64(key string, value float64) Field        { return Field{key, value} }
func Bool(key string, value bool) Field              { return Field{key, value} }
func Time(key string, value time.Time) Field         { return Field{key, value} }
func Duration(key string, value time.Duration) Field { return Field{key, value} }

// Err logs err under ErrorKey. A nil error is kept and rendered by the backend.
func Err(err error) Field { return Field{ErrorKey, err} }
