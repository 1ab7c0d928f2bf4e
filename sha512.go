// Package sha512 is a single-threaded reference implementation of the SHA-512
// hash function as defined in FIPS 180-4.
//
// The whole message is padded up front and then compressed one 128-byte block
// at a time, threading a single chaining value through the blocks in order.
// Nothing is streamed: Hasher buffers everything it is given and runs the same
// one-shot path on Sum.
//
// PaddedBytes exposes the padded buffer itself so callers can inspect the
// marker, the zero fill and the length field.
package sha512

import (
	fasthex "github.com/tmthrgd/go-hex"
)

const (
	// Size is the size, in bytes, of a SHA-512 digest.
	Size = 64

	// BlockSize is the size, in bytes, of one compression block.
	BlockSize = 128
)

// Digest is a finalized SHA-512 value.
type Digest [Size]byte

// String returns the 128 lowercase hex characters of d.
func (d Digest) String() string {
	return fasthex.EncodeToString(d[:])
}

func (d Digest) MarshalJSON() ([]byte, error) {
	var buf [Size*2 + 2]byte
	buf[0] = '"'
	buf[Size*2+1] = '"'
	fasthex.Encode(buf[1:], d[:])
	return buf[:], nil
}

// Sum512 computes the SHA-512 digest of message.
func Sum512(message []byte) Digest {
	return sumBlocks(Blocks(PaddedBytes(message)))
}

// Hex computes the SHA-512 digest of message as 128 lowercase hex characters.
func Hex(message []byte) string {
	return Sum512(message).String()
}

// sumBlocks compresses blocks strictly in the given order.
func sumBlocks(blocks [][]byte) Digest {
	state := iv
	for _, block := range blocks {
		w := expand(block)
		state = compress(state, &w)
	}
	return assemble(state)
}

// assemble serializes the chaining value h0..h7, each word big-endian.
func assemble(state [8]uint64) (d Digest) {
	for i, v := range state {
		putBe64(d[i*8:], v)
	}
	return d
}
