package sent

// Three 4-bit CRC variants over the fast-channel payload (spec §4.4) and
// one 6-bit CRC over the slow-channel ESM bit-pair stream (spec §4.6).
//
// All three CRC-4 variants are tried on every frame; a frame is accepted
// if any one matches (multi-vendor compatibility — SAE reference, GM
// throttle body, GM GDI fuel-pressure transmitters each use a different
// variant). Evaluate them in a fixed, cheap order and short-circuit on
// the first match (spec §9).

// crc4Table is the Koopman-style nibble lookup table shared by all three
// CRC-4 variants.
var crc4Table = [16]byte{
	0, 13, 7, 10, 14, 3, 9, 4, 1, 12, 6, 11, 15, 2, 8, 5,
}

// crc6Table is generated from polynomial x^6+x^4+x^3+1 (0x59): table[r] is
// the 6-bit register state after shifting six zero bits through a
// register that started at r. A CRC-6 round is then crc = table[crc] ^
// group, matching the "index by current state, XOR in new data"
// table-driven form.
var crc6Table = [64]byte{
	0x00, 0x19, 0x32, 0x2b, 0x3d, 0x24, 0x0f, 0x16,
	0x23, 0x3a, 0x11, 0x08, 0x1e, 0x07, 0x2c, 0x35,
	0x1f, 0x06, 0x2d, 0x34, 0x22, 0x3b, 0x10, 0x09,
	0x3c, 0x25, 0x0e, 0x17, 0x01, 0x18, 0x33, 0x2a,
	0x3e, 0x27, 0x0c, 0x15, 0x03, 0x1a, 0x31, 0x28,
	0x1d, 0x04, 0x2f, 0x36, 0x20, 0x39, 0x12, 0x0b,
	0x21, 0x38, 0x13, 0x0a, 0x1c, 0x05, 0x2e, 0x37,
	0x02, 0x1b, 0x30, 0x29, 0x3f, 0x26, 0x0d, 0x14,
}

// payloadNibble extracts nibble i (0 = status, 7 = CRC) from a frame's
// 32-bit shift register, MSN-first.
func payloadNibble(frame uint32, i int) byte {
	return byte((frame >> uint(4*(7-i))) & 0xF)
}

// crc4SAE is the SAE-reference CRC-4: XOR the nibble in before the table
// lookup, covering nibbles 0..6 (status through sig1's low nibble).
func crc4SAE(frame uint32) byte {
	c := byte(crc4Seed)
	for i := 0; i <= 6; i++ {
		c ^= payloadNibble(frame, i)
		c = crc4Table[c&0xF]
	}
	return c & 0xF
}

// crc4GM is the GM throttle-body variant: the table lookup precedes the
// XOR on each round, and the status nibble (index 0) is not covered.
func crc4GM(frame uint32) byte {
	c := byte(crc4Seed)
	for i := 1; i <= 6; i++ {
		c = crc4Table[c&0xF]
		c = (c ^ payloadNibble(frame, i)) & 0xF
	}
	return c & 0xF
}

// crc4GMv2 is the GM GDI fuel-pressure variant: identical to crc4GM but
// with one extra table round with zero input at the end.
func crc4GMv2(frame uint32) byte {
	c := crc4GM(frame)
	return crc4Table[c&0xF] & 0xF
}

// crc4Valid reports whether the frame's trailing CRC nibble matches any
// of the three accepted CRC-4 variants.
func crc4Valid(frame uint32) bool {
	got := payloadNibble(frame, 7)
	return got == crc4SAE(frame) || got == crc4GM(frame) || got == crc4GMv2(frame)
}

// crc6 computes the CRC-6 used to validate an ESM slow-channel candidate.
// data holds four 6-bit groups packed at bits 23..18, 17..12, 11..6, 5..0
// (i.e. the low 24 bits of sc_crc_shift, MSB-first: the bit pairs of the
// twelve most recent frames); one extra round
// with a zero input follows the four groups.
func crc6(data uint32) byte {
	c := byte(crc6Seed)
	for i := 0; i < 4; i++ {
		g := byte((data >> uint(24-6*(i+1))) & 0x3F)
		c = g ^ crc6Table[c&0x3F]
	}
	c = crc6Table[c&0x3F]
	return c & 0x3F
}
