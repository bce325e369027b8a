package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain helpers

func Component(name string) Field {
	return String("component", name)
}

func Dataset(name string) Field {
	return String("dataset", name)
}

// Table names one of the input tables: features, edges or classes.
func Table(name string) Field {
	return String("table", name)
}

func Format(name string) Field {
	return String("format", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Path(p string) Field {
	return String("path", p)
}

func Rows(n int) Field {
	return Int("rows", n)
}

func Columns(n int) Field {
	return Int("columns", n)
}

func Count(n int) Field {
	return Int("count", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
