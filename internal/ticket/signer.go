package ticket

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"unicode/utf16"

	"golang.org/x/crypto/blake2b"
)

// Signer produces and checks the last field of a QR payload.
type Signer interface {
	Sign(message string) string
	Verify(message, signature string) bool
}

const checksumModulus = 100000

// ChecksumSigner is the wire-compatible positional checksum. It detects
// transcription errors; it is not a security boundary.
type ChecksumSigner struct{}

// Sign sums charCode * position (1-based, UTF-16 code units) modulo 100000,
// zero-padded to five digits.
func (ChecksumSigner) Sign(message string) string {
	sum := 0
	for i, unit := range utf16.Encode([]rune(message)) {
		sum = (sum + int(unit)*(i+1)) % checksumModulus
	}
	return fmt.Sprintf("%05d", sum)
}

func (s ChecksumSigner) Verify(message, signature string) bool {
	return s.Sign(message) == signature
}

// Blake2bSigner is a keyed MAC over the same message. The signature is the
// first 16 bytes of BLAKE2b-256, hex encoded.
type Blake2bSigner struct {
	key []byte
}

func NewBlake2bSigner(key []byte) (*Blake2bSigner, error) {
	if len(key) == 0 || len(key) > blake2b.Size {
		return nil, fmt.Errorf("blake2b signer: key must be 1..%d bytes", blake2b.Size)
	}
	return &Blake2bSigner{key: append([]byte(nil), key...)}, nil
}

func (s *Blake2bSigner) Sign(message string) string {
	h, err := blake2b.New256(s.key)
	if err != nil {
		// key length is checked in NewBlake2bSigner
		panic(err)
	}
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil)[:16])
}

func (s *Blake2bSigner) Verify(message, signature string) bool {
	return subtle.ConstantTimeCompare([]byte(s.Sign(message)), []byte(signature)) == 1
}

// NewSigner picks a signer by name: "checksum" (default) or "blake2b".
func NewSigner(name string, key []byte) (Signer, error) {
	switch name {
	case "", "checksum":
		return ChecksumSigner{}, nil
	case "blake2b":
		s, err := NewBlake2bSigner(key)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown ticket signer %q", name)
	}
}
