package sha512

import "hash"

var _ hash.Hash = (*Hasher)(nil)

// Hasher adapts the one-shot digest to hash.Hash, e.g. for crypto/hmac.
// It keeps every written byte in memory until Reset.
type Hasher struct {
	buf []byte
}

// New returns an empty Hasher.
func New() *Hasher {
	return &Hasher{}
}

// Write appends p to the buffered message. It never fails.
func (h *Hasher) Write(p []byte) (int, error) {
	h.buf = append(h.buf, p...)
	return len(p), nil
}

// Sum appends the digest of everything written so far to b.
// Does not modify the hasher state.
func (h *Hasher) Sum(b []byte) []byte {
	d := Sum512(h.buf)
	return append(b, d[:]...)
}

// Sum512 returns the digest of everything written so far.
func (h *Hasher) Sum512() Digest {
	return Sum512(h.buf)
}

// Reset drops the buffered message.
func (h *Hasher) Reset() {
	h.buf = h.buf[:0]
}

// Size returns the digest size in bytes.
func (h *Hasher) Size() int { return Size }

// BlockSize returns the compression block size in bytes.
func (h *Hasher) BlockSize() int { return BlockSize }
