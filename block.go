package sha512

import "math/bits"

// schedule is the 80-word message schedule of one block.
type schedule [80]uint64

// expand reads the 16 big-endian words of block and extends them to 80.
// block must hold at least BlockSize bytes.
func expand(block []byte) (w schedule) {
	_ = block[BlockSize-1] // bounds check hint to compiler; see golang.org/issue/14808
	for t := 0; t < 16; t++ {
		w[t] = be64(block[t*8:])
	}
	for t := 16; t < 80; t++ {
		w[t] = sigma1(w[t-2]) + w[t-7] + sigma0(w[t-15]) + w[t-16]
	}
	return w
}

// compress runs the 80 rounds over w starting from state and returns the
// next chaining value (state plus the final working registers).
func compress(state [8]uint64, w *schedule) [8]uint64 {
	a, b, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]

	for t := 0; t < 80; t++ {
		t1 := h + bigSigma1(e) + ch(e, f, g) + _K[t] + w[t]
		t2 := bigSigma0(a) + maj(a, b, c)

		h = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	state[0] += a
	state[1] += b
	state[2] += c
	state[3] += d
	state[4] += e
	state[5] += f
	state[6] += g
	state[7] += h
	return state
}

func rotr(x uint64, n int) uint64 {
	return bits.RotateLeft64(x, -n)
}

func sigma0(x uint64) uint64 { return rotr(x, 1) ^ rotr(x, 8) ^ x>>7 }

func sigma1(x uint64) uint64 { return rotr(x, 19) ^ rotr(x, 61) ^ x>>6 }

func bigSigma0(a uint64) uint64 { return rotr(a, 28) ^ rotr(a, 34) ^ rotr(a, 39) }

func bigSigma1(e uint64) uint64 { return rotr(e, 14) ^ rotr(e, 18) ^ rotr(e, 41) }

// ch picks f where e is set and g elsewhere.
func ch(e, f, g uint64) uint64 { return (e & f) ^ (^e & g) }

func maj(a, b, c uint64) uint64 { return (a & b) ^ (a & c) ^ (b & c) }

// be64 reads a big-endian uint64 from at least 8 bytes.
func be64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[7]) | uint64(b[6])<<8 | uint64(b[5])<<16 | uint64(b[4])<<24 |
		uint64(b[3])<<32 | uint64(b[2])<<40 | uint64(b[1])<<48 | uint64(b[0])<<56
}

// putBe64 writes v big-endian into the first 8 bytes of b.
func putBe64(b []byte, v uint64) {
	_ = b[7]
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}
