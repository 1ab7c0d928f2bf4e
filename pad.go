package sha512

import "lukechampine.com/uint128"

// lengthSize is the width of the big-endian bit-length field that closes the
// padded message.
const lengthSize = 16

// PaddedBytes returns message followed by the 0x80 marker, zero fill and the
// 128-bit message length in bits. The result is always a positive multiple of
// BlockSize; an empty message pads to exactly one block.
//
// message is only read. The returned buffer is freshly allocated.
func PaddedBytes(message []byte) []byte {
	withOne := len(message) + 1
	// Zero fill stops at byte offset 112 mod 128 (bit offset 896 mod 1024).
	k := (BlockSize - (withOne+lengthSize)%BlockSize) % BlockSize

	padded := make([]byte, withOne+k+lengthSize)
	copy(padded, message)
	padded[len(message)] = 0x80
	bitLength(uint64(len(message))).PutBytesBE(padded[len(padded)-lengthSize:])
	return padded
}

// bitLength returns the 128-bit length field for an n byte message. The high
// word is always zero and the low word is n*8 mod 2^64, so messages of 2^61
// bytes or more get a wrapped length instead of being rejected.
func bitLength(n uint64) uint128.Uint128 {
	return uint128.From64(n << 3)
}

// Blocks splits a padded buffer into consecutive BlockSize slices, in order.
// The slices alias padded. It panics if len(padded) is not a multiple of BlockSize.
func Blocks(padded []byte) [][]byte {
	if len(padded)%BlockSize != 0 {
		panic("sha512: padded length is not a multiple of the block size")
	}
	blocks := make([][]byte, 0, len(padded)/BlockSize)
	for i := 0; i < len(padded); i += BlockSize {
		blocks = append(blocks, padded[i:i+BlockSize:i+BlockSize])
	}
	return blocks
}
