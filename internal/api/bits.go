package api

import (
	"strconv"
	"strings"
)

// Letter is one code point of the message with its binary rendering.
type Letter struct {
	Char string `json:"char"`
	Bits string `json:"bits"`
}

// BitString renders every byte of buf as 8 binary digits, most significant first.
func BitString(buf []byte) string {
	out := make([]byte, 0, len(buf)*8)
	for _, b := range buf {
		for i := 7; i >= 0; i-- {
			out = append(out, '0'+(b>>i)&1)
		}
	}
	return string(out)
}

// Letters returns one entry per code point of message. Bits is the code point
// in binary, left padded with zeros to at least 8 digits.
func Letters(message string) []Letter {
	letters := make([]Letter, 0, len(message))
	for _, r := range message {
		letters = append(letters, Letter{
			Char: string(r),
			Bits: codePointBits(r),
		})
	}
	return letters
}

// UniqueLetters keeps the first occurrence of each character, in order.
func UniqueLetters(letters []Letter) []Letter {
	seen := make(map[string]struct{}, len(letters))
	out := make([]Letter, 0, len(letters))
	for _, l := range letters {
		if _, ok := seen[l.Char]; ok {
			continue
		}
		seen[l.Char] = struct{}{}
		out = append(out, l)
	}
	return out
}

func codePointBits(r rune) string {
	s := strconv.FormatInt(int64(r), 2)
	if len(s) < 8 {
		s = strings.Repeat("0", 8-len(s)) + s
	}
	return s
}
