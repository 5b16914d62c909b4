package geom

import "math/bits"

// int128 is a signed 128-bit integer used for exact predicates.
// The value is hi*2^64 + lo.
type int128 struct {
	hi int64
	lo uint64
}

// mul64 returns the exact product a*b.
func mul64(a, b int64) int128 {
	neg := (a < 0) != (b < 0)
	ua, ub := uint64(abs64(a)), uint64(abs64(b))
	hi, lo := bits.Mul64(ua, ub)
	r := int128{hi: int64(hi), lo: lo}
	if neg {
		return r.neg()
	}
	return r
}

func (x int128) neg() int128 {
	lo := ^x.lo + 1
	hi := ^x.hi
	if lo == 0 {
		hi++
	}
	return int128{hi: hi, lo: lo}
}

func (x int128) add(y int128) int128 {
	lo, carry := bits.Add64(x.lo, y.lo, 0)
	return int128{hi: x.hi + y.hi + int64(carry), lo: lo}
}

func (x int128) sub(y int128) int128 {
	return x.add(y.neg())
}

func (x int128) sign() int {
	switch {
	case x.hi < 0:
		return -1
	case x.hi > 0 || x.lo != 0:
		return 1
	default:
		return 0
	}
}

func (x int128) float() float64 {
	if x.hi < 0 {
		return -x.neg().float()
	}
	return float64(x.hi)*(1<<64) + float64(x.lo)
}

// cross128 returns the exact cross product a×b.
func cross128(a, b Point) int128 {
	return mul64(a.X, b.Y).sub(mul64(a.Y, b.X))
}

// orient returns the sign of (b-a)×(c-a): positive when c lies left of the
// directed line a→b, negative when right, zero when collinear.
func orient(a, b, c Point) int {
	return cross128(b.Sub(a), c.Sub(a)).sign()
}
