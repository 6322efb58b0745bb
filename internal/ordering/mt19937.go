package ordering

import "math/bits"

const (
	mtN       = 624
	mtM       = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// MT19937 is a 32-bit Mersenne Twister seeded the same way as CPython's
// random.Random(int), so a seed produces the same draws and shuffles in both.
// It is not safe for concurrent use.
type MT19937 struct {
	mt  [mtN]uint32
	mti int
}

// NewMT19937 returns a generator seeded with seed. Negative seeds use their
// absolute value, like CPython.
func NewMT19937(seed int64) *MT19937 {
	u := uint64(seed)
	if seed < 0 {
		u = uint64(-seed) // MinInt64 wraps to 1<<63, which is its magnitude.
	}
	key := []uint32{uint32(u)}
	if hi := uint32(u >> 32); hi != 0 {
		key = append(key, hi)
	}
	m := &MT19937{}
	m.initByArray(key)
	return m
}

func (m *MT19937) initGenrand(s uint32) {
	m.mt[0] = s
	for i := 1; i < mtN; i++ {
		m.mt[i] = 1812433253*(m.mt[i-1]^(m.mt[i-1]>>30)) + uint32(i)
	}
	m.mti = mtN
}

func (m *MT19937) initByArray(key []uint32) {
	m.initGenrand(19650218)
	i, j := 1, 0
	for k := max(mtN, len(key)); k > 0; k-- {
		m.mt[i] = (m.mt[i] ^ ((m.mt[i-1] ^ (m.mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k := mtN - 1; k > 0; k-- {
		m.mt[i] = (m.mt[i] ^ ((m.mt[i-1] ^ (m.mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
	}
	m.mt[0] = 0x80000000
}

func (m *MT19937) twist() {
	mag := func(y uint32) uint32 { return (y & 1) * matrixA }
	kk := 0
	for ; kk < mtN-mtM; kk++ {
		y := (m.mt[kk] & upperMask) | (m.mt[kk+1] & lowerMask)
		m.mt[kk] = m.mt[kk+mtM] ^ (y >> 1) ^ mag(y)
	}
	for ; kk < mtN-1; kk++ {
		y := (m.mt[kk] & upperMask) | (m.mt[kk+1] & lowerMask)
		m.mt[kk] = m.mt[kk+mtM-mtN] ^ (y >> 1) ^ mag(y)
	}
	y := (m.mt[mtN-1] & upperMask) | (m.mt[0] & lowerMask)
	m.mt[mtN-1] = m.mt[mtM-1] ^ (y >> 1) ^ mag(y)
	m.mti = 0
}

// Uint32 returns the next tempered 32-bit output.
func (m *MT19937) Uint32() uint32 {
	if m.mti >= mtN {
		m.twist()
	}
	y := m.mt[m.mti]
	m.mti++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Bits returns a value with k random bits, 0 < k <= 64. Words are filled
// least significant first and the last word keeps its top bits, matching
// getrandbits.
func (m *MT19937) Bits(k int) uint64 {
	if k <= 0 || k > 64 {
		panic("ordering: Bits argument out of range")
	}
	var out uint64
	for shift := 0; k > 0; shift += 32 {
		r := m.Uint32()
		if k < 32 {
			r >>= 32 - k
		}
		out |= uint64(r) << shift
		k -= 32
	}
	return out
}

// Intn returns a uniform value in [0, n) by rejection sampling on
// bit-length draws. It panics if n <= 0.
func (m *MT19937) Intn(n int) int {
	if n <= 0 {
		panic("ordering: Intn argument must be positive")
	}
	k := bits.Len64(uint64(n))
	r := m.Bits(k)
	for r >= uint64(n) {
		r = m.Bits(k)
	}
	return int(r)
}

// Shuffle permutes n elements with reverse Fisher-Yates, drawing
// j = Intn(i+1) for i from n-1 down to 1. n < 2 consumes no draws.
func (m *MT19937) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, m.Intn(i+1))
	}
}
