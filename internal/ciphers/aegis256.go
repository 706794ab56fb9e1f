package ciphers

import "crypto/subtle"

// AEGIS-256 is layer 2 of the cascade. It is a from-scratch construction:
// the retrieval pack has no pure-Go AEGIS package, so this adapter builds
// AEGIS's state-update function directly from a hand-written single-round
// AES encryption round (SubBytes/ShiftRows/MixColumns/AddRoundKey) — the
// same "round function as mixing primitive" idea the AEGIS family itself
// is built on, with its own copy of the AES S-box rather than crypto/aes's
// Block type (crypto/aes.Block only exposes full multi-round encryption,
// not a bare round, which AEGIS needs as its state-update primitive).

var aesSBox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

func aesGMul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

func aesRound(in, roundKey [16]byte) [16]byte {
	var sub, shifted, mixed [16]byte
	for i, b := range in {
		sub[i] = aesSBox[b]
	}
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			shifted[r+4*c] = sub[r+4*((c+r)%4)]
		}
	}
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := shifted[4*c], shifted[4*c+1], shifted[4*c+2], shifted[4*c+3]
		mixed[4*c+0] = aesGMul(a0, 2) ^ aesGMul(a1, 3) ^ a2 ^ a3
		mixed[4*c+1] = a0 ^ aesGMul(a1, 2) ^ aesGMul(a2, 3) ^ a3
		mixed[4*c+2] = a0 ^ a1 ^ aesGMul(a2, 2) ^ aesGMul(a3, 3)
		mixed[4*c+3] = aesGMul(a0, 3) ^ a1 ^ a2 ^ aesGMul(a3, 2)
	}
	var out [16]byte
	for i := range out {
		out[i] = mixed[i] ^ roundKey[i]
	}
	return out
}

func xorBlock16(a, b [16]byte) [16]byte {
	var out [16]byte
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func andBlock16(a, b [16]byte) [16]byte {
	var out [16]byte
	for i := range out {
		out[i] = a[i] & b[i]
	}
	return out
}

func toBlock16(b []byte) [16]byte {
	var out [16]byte
	copy(out[:], b)
	return out
}

var (
	aegisC0 = [16]byte{0x00, 0x01, 0x01, 0x02, 0x03, 0x05, 0x08, 0x0d, 0x15, 0x22, 0x37, 0x59, 0x90, 0xe9, 0x79, 0x62}
	aegisC1 = [16]byte{0xdb, 0x3d, 0x18, 0x55, 0x6d, 0xc2, 0x2f, 0xf1, 0x20, 0x11, 0x31, 0x42, 0x73, 0xb5, 0x28, 0xdd}
)

type aegis256State [6][16]byte

func (s *aegis256State) update(m [16]byte) {
	newS0 := aesRound(s[5], xorBlock16(s[0], m))
	newS1 := aesRound(s[0], s[1])
	newS2 := aesRound(s[1], s[2])
	newS3 := aesRound(s[2], s[3])
	newS4 := aesRound(s[3], s[4])
	newS5 := aesRound(s[4], s[5])
	s[0], s[1], s[2], s[3], s[4], s[5] = newS0, newS1, newS2, newS3, newS4, newS5
}

func aegis256Init(key, nonce [32]byte) aegis256State {
	k0, k1 := toBlock16(key[:16]), toBlock16(key[16:])
	n0, n1 := toBlock16(nonce[:16]), toBlock16(nonce[16:])

	var s aegis256State
	s[0] = xorBlock16(k0, n0)
	s[1] = xorBlock16(k1, n1)
	s[2] = aegisC1
	s[3] = aegisC0
	s[4] = xorBlock16(k0, aegisC0)
	s[5] = xorBlock16(k1, aegisC1)

	kn0 := xorBlock16(k0, n0)
	kn1 := xorBlock16(k1, n1)
	for i := 0; i < 4; i++ {
		s.update(k0)
		s.update(k1)
		s.update(kn0)
		s.update(kn1)
	}
	return s
}

func aegis256AbsorbAD(s *aegis256State, ad []byte) {
	for off := 0; off < len(ad); off += 16 {
		end := off + 16
		var block [16]byte
		if end > len(ad) {
			copy(block[:], ad[off:])
		} else {
			copy(block[:], ad[off:end])
		}
		s.update(block)
	}
}

func aegis256Keystream(s *aegis256State) [16]byte {
	z := xorBlock16(s[1], s[4])
	z = xorBlock16(z, s[5])
	z = xorBlock16(z, andBlock16(s[2], s[3]))
	return z
}

func aegis256Encrypt(s *aegis256State, plaintext []byte) []byte {
	ciphertext := make([]byte, len(plaintext))
	for off := 0; off < len(plaintext); off += 16 {
		end := off + 16
		var block [16]byte
		n := 16
		if end > len(plaintext) {
			n = len(plaintext) - off
			copy(block[:], plaintext[off:])
		} else {
			copy(block[:], plaintext[off:end])
		}
		z := aegis256Keystream(s)
		ct := xorBlock16(block, z)
		copy(ciphertext[off:off+n], ct[:n])
		s.update(block)
	}
	return ciphertext
}

func aegis256Decrypt(s *aegis256State, ciphertext []byte) []byte {
	plaintext := make([]byte, len(ciphertext))
	for off := 0; off < len(ciphertext); off += 16 {
		end := off + 16
		n := 16
		var ctBlock [16]byte
		if end > len(ciphertext) {
			n = len(ciphertext) - off
			copy(ctBlock[:], ciphertext[off:])
		} else {
			copy(ctBlock[:], ciphertext[off:end])
		}
		z := aegis256Keystream(s)
		ptBlock := xorBlock16(ctBlock, z)
		if n < 16 {
			for i := n; i < 16; i++ {
				ptBlock[i] = 0
			}
		}
		copy(plaintext[off:off+n], ptBlock[:n])
		s.update(ptBlock)
	}
	return plaintext
}

func aegis256Finalize(s *aegis256State, adLen, msgLen int) [32]byte {
	var sizes [16]byte
	asconPutBE(uint64(adLen)*8, sizes[0:8])
	asconPutBE(uint64(msgLen)*8, sizes[8:16])
	tmp := xorBlock16(sizes, s[3])
	for i := 0; i < 7; i++ {
		s.update(tmp)
	}
	var tag [32]byte
	h1 := xorBlock16(xorBlock16(s[0], s[1]), s[2])
	h2 := xorBlock16(xorBlock16(s[3], s[4]), s[5])
	copy(tag[:16], h1[:])
	copy(tag[16:], h2[:])
	return tag
}

// AEGIS256 is layer 2 of the cascade.
type AEGIS256 struct{}

func (AEGIS256) KeySize() int   { return 32 }
func (AEGIS256) NonceSize() int { return 32 }
func (AEGIS256) TagSize() int   { return 32 }

func (a AEGIS256) Seal(key, nonce, plaintext, aad []byte) ([]byte, []byte, error) {
	if err := checkSizes(a, key, nonce); err != nil {
		return nil, nil, err
	}
	s := aegis256Init(toBlock32(key), toBlock32(nonce))
	aegis256AbsorbAD(&s, aad)
	ciphertext := aegis256Encrypt(&s, plaintext)
	tag := aegis256Finalize(&s, len(aad), len(plaintext))
	return ciphertext, tag[:], nil
}

func (a AEGIS256) Open(key, nonce, ciphertext, tag, aad []byte) ([]byte, error) {
	if err := checkSizes(a, key, nonce); err != nil {
		return nil, err
	}
	if len(tag) != 32 {
		return nil, ErrInvalidSize
	}
	s := aegis256Init(toBlock32(key), toBlock32(nonce))
	aegis256AbsorbAD(&s, aad)
	plaintext := aegis256Decrypt(&s, ciphertext)
	expected := aegis256Finalize(&s, len(aad), len(ciphertext))

	if subtle.ConstantTimeCompare(expected[:], tag) != 1 {
		for i := range plaintext {
			plaintext[i] = 0
		}
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

func toBlock32(b []byte) [32]byte {
	var out [32]byte
	copy(out[:], b)
	return out
}
