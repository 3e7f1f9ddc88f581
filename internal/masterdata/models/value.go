package models

import (
	"strconv"
	"time"
)

type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
	KindBool
	KindTimestamp
)

type Column struct {
	Name string
	Kind ColumnKind
}

// Value is a single nullable cell. A null cell is distinct from an empty
// text cell.
type Value struct {
	null bool
	kind ColumnKind
	text string
	num  float64
	b    bool
	ts   time.Time
}

func NullValue() Value {
	return Value{null: true}
}

func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

func NumberValue(f float64) Value {
	return Value{kind: KindNumeric, num: f}
}

func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func TimeValue(t time.Time) Value {
	return Value{kind: KindTimestamp, ts: t}
}

func (v Value) IsNull() bool { return v.null }

func (v Value) Kind() ColumnKind { return v.kind }

func (v Value) Text() string { return v.text }

func (v Value) Number() float64 { return v.num }

func (v Value) Bool() bool { return v.b }

func (v Value) Time() time.Time { return v.ts }

// Driver converts the cell into a value accepted by database/sql.
func (v Value) Driver() interface{} {
	if v.null {
		return nil
	}
	switch v.kind {
	case KindNumeric:
		return v.num
	case KindBool:
		return v.b
	case KindTimestamp:
		return v.ts
	default:
		return v.text
	}
}

// Display renders the cell for tables and CSV exports.
func (v Value) Display() string {
	if v.null {
		return ""
	}
	switch v.kind {
	case KindNumeric:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTimestamp:
		return v.ts.Format("2006-01-02 15:04:05")
	default:
		return v.text
	}
}
