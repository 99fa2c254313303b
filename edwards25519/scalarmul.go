package edwards25519

import (
	"sync"
	"sync/atomic"

	"github.com/aral/noble-ed25519/internal/scalar"
)

// MultiplyUnsafe computes k*P by left-to-right double-and-add over the
// 256-bit scalar. It consults no precomputed table and its control flow
// depends on k's bits, so it must only be used when k is not secret
// (verification) or P is not the shared base point — hence "Unsafe".
func MultiplyUnsafe(k *scalar.Scalar, p *ExtendedPoint) ExtendedPoint {
	kb := k.Bytes()
	acc := ExtIdentity
	for i := 255; i >= 0; i-- {
		acc.Double(&acc)
		byteIdx := i / 8
		bitIdx := uint(i % 8)
		if (kb[byteIdx]>>bitIdx)&1 == 1 {
			acc.Add(&acc, p)
		}
	}
	return acc
}

// DefaultWindow is the default window width for base-point scalar
// multiplication (spec.md §4.D).
const DefaultWindow = 4

// PrecomputeTable is a windowed precomputation for a fixed base point at
// a fixed window width W: table[i][j-1] = j * 2^(W*i) * B for i in
// 0..ceil(256/W)-1 and j in 1..2^W-1. Window digits are unsigned
// (0..2^W-1); no signed-digit recoding is applied.
type PrecomputeTable struct {
	w      int
	digits int
	rows   [][]ExtendedPoint
}

// Precompute builds a PrecomputeTable for base point b at window width w
// (spec.md §4.D: for each window index i the base is brought to
// 2^(W*i) * B by W further doublings of the previous window's base, then
// its 1..2^W-1 multiples are enumerated by successive addition).
func Precompute(b *ExtendedPoint, w int) *PrecomputeTable {
	if w < 1 {
		w = DefaultWindow
	}
	digits := (256 + w - 1) / w
	entriesPerRow := (1 << uint(w)) - 1

	rows := make([][]ExtendedPoint, digits)
	windowBase := *b
	for i := 0; i < digits; i++ {
		row := make([]ExtendedPoint, entriesPerRow)
		row[0] = windowBase
		for j := 1; j < entriesPerRow; j++ {
			row[j].Add(&row[j-1], &windowBase)
		}
		rows[i] = row

		if i != digits-1 {
			var next ExtendedPoint
			next = windowBase
			for s := 0; s < w; s++ {
				next.Double(&next)
			}
			windowBase = next
		}
	}
	return &PrecomputeTable{w: w, digits: digits, rows: rows}
}

// lookup returns the identity if digit == 0, or rows[i][digit-1].
// Plain indexing, not a masked constant-time scan: spec.md's Non-goals
// explicitly leave table-lookup timing out of scope by default ("An
// implementer targeting constant time must additionally mask table
// lookups and conditional selects").
func (t *PrecomputeTable) lookup(i int, digit uint64) ExtendedPoint {
	if digit == 0 {
		return ExtIdentity
	}
	return t.rows[i][digit-1]
}

// Multiply computes k*B via the windowed table, splitting k into
// ceil(256/W) W-bit windows and adding each window's precomputed
// contribution with no intermediate doublings (the doublings are baked
// into the table). k is assumed already reduced mod n; callers pre-reduce.
func (t *PrecomputeTable) Multiply(k *scalar.Scalar) ExtendedPoint {
	kb := k.Bytes()
	acc := ExtIdentity
	mask := uint64(1<<uint(t.w)) - 1
	for i := 0; i < t.digits; i++ {
		digit := windowBits(&kb, i*t.w, t.w) & mask
		contribution := t.lookup(i, digit)
		acc.Add(&acc, &contribution)
	}
	return acc
}

// windowBits extracts w bits starting at bit offset off from a 32-byte
// little-endian buffer.
func windowBits(b *[32]byte, off, w int) uint64 {
	var v uint64
	for i := 0; i < w; i++ {
		bitPos := off + i
		byteIdx := bitPos / 8
		if byteIdx >= 32 {
			break
		}
		bitIdx := uint(bitPos % 8)
		bit := (b[byteIdx] >> bitIdx) & 1
		v |= uint64(bit) << uint(i)
	}
	return v
}

// defaultTable is the process-wide cache for the standard base point B
// at DefaultWindow, built lazily on first use (spec.md §5, §9: "a lazy
// once-initialized cell").
var (
	defaultTableOnce sync.Once
	defaultTable     atomic.Pointer[PrecomputeTable]
)

// BaseTable returns the process-wide precomputed table for the base
// point B: the one installed by SetBaseTable if any, otherwise the
// DefaultWindow table, built on first call.
func BaseTable() *PrecomputeTable {
	defaultTableOnce.Do(func() {
		defaultTable.CompareAndSwap(nil, Precompute(&ExtBase, DefaultWindow))
	})
	return defaultTable.Load()
}

// SetBaseTable atomically replaces the process-wide base-point table,
// e.g. after an explicit re-precompute at a different window width.
// Concurrent readers observe either the old table or the fully-built
// new one, never a torn table, because the swap is a single pointer
// store (spec.md §5).
func SetBaseTable(t *PrecomputeTable) {
	defaultTable.Store(t)
}

// MultiplyBase computes k*B using the process-wide base table,
// building the default table on first use.
func MultiplyBase(k *scalar.Scalar) ExtendedPoint {
	return BaseTable().Multiply(k)
}
