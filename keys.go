// keys.go: packed key decoding for the command interpreter (§4.F)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

// readKey decodes a packed key starting at c's current position: depth: u64,
// then depth segments of (seg_len: u64, seg_bytes). It returns the segments
// in trie-descent order together with the raw bytes consumed — the packed
// key is echoed back verbatim in a ReturnNotFound error body (spec.md §8
// scenario 5), so callers keep raw around rather than re-encoding it.
//
// The segment-count hint from an untrusted depth is clamped to what the
// remaining buffer could possibly hold, so a malicious depth value cannot
// force a large allocation before the first malformed segment is caught.
func readKey(c *cursor) (segs [][]byte, raw []byte, ok bool) {
	start := c.pos
	depth, ok := c.readU64()
	if !ok {
		return nil, nil, false
	}

	hint := int(depth)
	if rem := c.remaining() / 8; hint > rem {
		hint = rem
	}
	if hint < 0 {
		hint = 0
	}

	segs = make([][]byte, 0, hint)
	for i := uint64(0); i < depth; i++ {
		segLen, ok := c.readU64()
		if !ok {
			return nil, nil, false
		}
		seg, ok := c.readBytes(int(segLen))
		if !ok {
			return nil, nil, false
		}
		segs = append(segs, seg)
	}
	return segs, c.buf[start:c.pos], true
}

// peekByte returns the byte at c's current read position without consuming
// it, for embedding in an UnexpectedByte error after a failed decode; it
// returns 0 once the buffer is exhausted.
func peekByte(c *cursor) byte {
	if c.remaining() < 1 {
		return 0
	}
	return c.buf[c.pos]
}
