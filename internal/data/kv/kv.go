// Package kv is the flat, typed key-value storage the step counter persists
// into. Stores are synchronous and last-writer-wins; a Batch is applied
// atomically by every backend.
package kv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name
var ErrUnknownBackend = errors.New("unknown storage backend")

// Kind is the scalar type of a stored value
type Kind int

const (
	KindInt Kind = iota + 1
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a typed scalar
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Str   string
}

func IntValue(v int64) Value { return Value{Kind: KindInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }
func StringValue(v string) Value { return Value{Kind: KindString, Str: v} }

// Store is the storage capability the domain code depends on
type Store interface {
	// Snapshot returns a copy of every stored key
	Snapshot() (map[string]Value, error)
	// Apply writes a batch atomically
	Apply(batch *Batch) error
	Close() error
}

type opKind int

const (
	opClear opKind = iota
	opPut
	opRemove
)

type op struct {
	kind  opKind
	key   string
	value Value
}

// Batch is an ordered list of mutations. A Clear inside a batch only drops
// keys written before it, so "clear then rewrite" is a single atomic step.
type Batch struct {
	ops []op
}

func NewBatch() *Batch {
	return &Batch{}
}

// Clear removes every key
func (b *Batch) Clear() *Batch {
	b.ops = append(b.ops, op{kind: opClear})
	return b
}

func (b *Batch) PutInt(key string, v int) *Batch {
	return b.put(key, IntValue(int64(v)))
}

func (b *Batch) PutFloat(key string, v float64) *Batch {
	return b.put(key, FloatValue(v))
}

func (b *Batch) PutString(key string, v string) *Batch {
	return b.put(key, StringValue(v))
}

func (b *Batch) Remove(key string) *Batch {
	b.ops = append(b.ops, op{kind: opRemove, key: key})
	return b
}

func (b *Batch) put(key string, v Value) *Batch {
	b.ops = append(b.ops, op{kind: opPut, key: key, value: v})
	return b
}

// Len returns the number of recorded mutations
func (b *Batch) Len() int {
	return len(b.ops)
}

// applyTo replays the batch onto an in-memory map
func (b *Batch) applyTo(values map[string]Value) {
	for _, o := range b.ops {
		switch o.kind {
		case opClear:
			for k := range values {
				delete(values, k)
			}
		case opPut:
			values[o.key] = o.value
		case opRemove:
			delete(values, o.key)
		}
	}
}

// Int reads an int, returning def when the key is missing or not an int
func Int(values map[string]Value, key string, def int) int {
	if v, ok := values[key]; ok && v.Kind == KindInt {
		return int(v.Int)
	}
	return def
}

// Float reads a float; ok is false when the key is missing or not a float
func Float(values map[string]Value, key string) (float64, bool) {
	if v, ok := values[key]; ok && v.Kind == KindFloat {
		return v.Float, true
	}
	return 0, false
}

// String reads a string, returning def when the key is missing or not a string
func String(values map[string]Value, key string, def string) string {
	if v, ok := values[key]; ok && v.Kind == KindString {
		return v.Str
	}
	return def
}

// WithPrefix returns the entries whose key starts with prefix
func WithPrefix(values map[string]Value, prefix string) map[string]Value {
	out := make(map[string]Value)
	for k, v := range values {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out
}

func copyValues(values map[string]Value) map[string]Value {
	out := make(map[string]Value, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
