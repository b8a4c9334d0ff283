// Package gameid generates sortable game identifiers: a UUIDv7 encoded as 26
// characters of Crockford base32, in the style of TypeID.
package gameid

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded ID.
const Length = 26

// Generator creates IDs from a source of randomness.
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator reading random bits from r. A nil reader
// uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Generate creates a new game ID using crypto/rand.
func Generate() string {
	id, err := NewGenerator(nil).New()
	if err != nil {
		panic("failed to generate game id: " + err.Error())
	}
	return id
}

// New creates a new game ID.
func (g *Generator) New() (string, error) {
	u, err := uuid.NewV7FromReader(g.rand)
	if err != nil {
		return "", err
	}
	return Encode(u), nil
}

// Encode writes the 128 bits of u, prefixed with two zero bits, as 26 base32
// characters.
func Encode(u uuid.UUID) string {
	out := make([]byte, Length)
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			bit := i*5 + j - 2
			v <<= 1
			if bit >= 0 && u[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Decode parses an encoded ID back into its UUID.
func Decode(id string) (uuid.UUID, error) {
	var u uuid.UUID
	if err := Validate(id); err != nil {
		return u, err
	}
	for i := 0; i < Length; i++ {
		v := byte(strings.IndexByte(alphabet, id[i]))
		for j := 0; j < 5; j++ {
			bit := i*5 + j - 2
			if bit < 0 || v&(0x10>>j) == 0 {
				continue
			}
			u[bit/8] |= 0x80 >> (bit % 8)
		}
	}
	return u, nil
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	// the two padding bits must be zero
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

// Timestamp returns the creation time carried in the ID, to the millisecond.
func Timestamp(id string) (time.Time, error) {
	u, err := Decode(id)
	if err != nil {
		return time.Time{}, err
	}
	if u.Version() != 7 {
		return time.Time{}, fmt.Errorf("game ID is not a version 7 UUID")
	}
	var ms int64
	for i := 0; i < 6; i++ {
		ms = ms<<8 | int64(u[i])
	}
	return time.UnixMilli(ms), nil
}
