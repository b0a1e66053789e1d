// Package keyspace implements the composite, totally ordered key used
// throughout the dependency index: an ordered tuple of typed columns plus
// a 32-bit fingerprint sampled into B-tree node hint arrays.
package keyspace

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Kind identifies which primitive variant a Column holds.
type Kind uint8

const (
	KindInt64 Kind = iota
	KindFloat64
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Column is a single typed component of a composite Key. Only the field
// selected by Kind is meaningful.
type Column struct {
	Kind Kind
	I    int64
	F    float64
	S    string
}

// Int64Col builds an integer column.
func Int64Col(v int64) Column { return Column{Kind: KindInt64, I: v} }

// Float64Col builds a floating-point column.
func Float64Col(v float64) Column { return Column{Kind: KindFloat64, F: v} }

// StringCol builds a string column.
func StringCol(v string) Column { return Column{Kind: KindString, S: v} }

// Compare orders two columns. Columns of the same Kind compare by value;
// columns of different Kind fall back to a fixed Kind ordering. Cross-Kind
// comparison is not normally exercised — LHS/RHS columns are typed
// homogeneously — but must still be total.
func (c Column) Compare(o Column) int {
	if c.Kind != o.Kind {
		if c.Kind < o.Kind {
			return -1
		}
		return 1
	}
	switch c.Kind {
	case KindInt64:
		switch {
		case c.I < o.I:
			return -1
		case c.I > o.I:
			return 1
		default:
			return 0
		}
	case KindFloat64:
		switch {
		case c.F < o.F:
			return -1
		case c.F > o.F:
			return 1
		default:
			return 0
		}
	default: // KindString
		switch {
		case c.S < o.S:
			return -1
		case c.S > o.S:
			return 1
		default:
			return 0
		}
	}
}

// appendBytes writes a tagged, order-agnostic encoding of the column,
// used for hashing and for set-membership keys — never for ordering.
func (c Column) appendBytes(buf []byte) []byte {
	buf = append(buf, byte(c.Kind))
	switch c.Kind {
	case KindInt64:
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], uint64(c.I))
		return append(buf, tmp[:]...)
	case KindFloat64:
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(c.F))
		return append(buf, tmp[:]...)
	default: // KindString
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], uint64(len(c.S)))
		buf = append(buf, tmp[:]...)
		return append(buf, c.S...)
	}
}

func (c Column) String() string {
	switch c.Kind {
	case KindInt64:
		return strconv.FormatInt(c.I, 10)
	case KindFloat64:
		return strconv.FormatFloat(c.F, 'g', -1, 64)
	default:
		return c.S
	}
}

// Key is an ordered tuple of Columns, compared lexicographically column by
// column (C1). An empty Key (no columns) is the null sentinel: rows whose
// LHS or RHS is null are segregated by the host and never reach the index
// as a Key.
type Key struct {
	Columns []Column
}

// New builds a Key from the given columns.
func New(cols ...Column) Key {
	return Key{Columns: append([]Column(nil), cols...)}
}

// IsNull reports whether k is the null sentinel (no columns).
func (k Key) IsNull() bool { return len(k.Columns) == 0 }

// Compare implements the total order over Keys required by the tree (I6).
func Compare(a, b Key) int {
	n := len(a.Columns)
	if len(b.Columns) < n {
		n = len(b.Columns)
	}
	for i := 0; i < n; i++ {
		if c := a.Columns[i].Compare(b.Columns[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a.Columns) < len(b.Columns):
		return -1
	case len(a.Columns) > len(b.Columns):
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts before b.
func Less(a, b Key) bool { return Compare(a, b) < 0 }

// Equal reports whether a and b are the same key.
func Equal(a, b Key) bool { return Compare(a, b) == 0 }

// Head returns the 32-bit fingerprint of k's first column, sampled into
// node hint arrays (C1, §4.1). It is not order-preserving: equal keys
// always yield equal heads, but unequal keys may collide. The empty key
// hashes to 0.
func Head(k Key) uint32 {
	if len(k.Columns) == 0 {
		return 0
	}
	buf := k.Columns[0].appendBytes(make([]byte, 0, 16))
	return uint32(xxhash.Sum64(buf))
}

// Bytes returns a canonical encoding of k, used only as a map key for
// set membership (payload.Record.RHSSet) — never for ordering.
func (k Key) Bytes() []byte {
	buf := make([]byte, 0, 16*len(k.Columns))
	for _, c := range k.Columns {
		buf = c.appendBytes(buf)
	}
	return buf
}

func (k Key) String() string {
	if len(k.Columns) == 0 {
		return "<null>"
	}
	s := "("
	for i, c := range k.Columns {
		if i > 0 {
			s += ", "
		}
		s += c.String()
	}
	return s + ")"
}
