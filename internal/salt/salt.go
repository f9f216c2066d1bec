// Package salt implements the positional password-salting scheme: the
// salt is spliced into the plaintext at a position derived from the
// password itself before hashing, rather than appended. This raises the
// cost of precomputation without needing a per-field pepper.
package salt

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/violethawk/server/internal/model"
)

// Salts are letters-only so a stored record stays unambiguous in any
// text encoding the graph store applies.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Codec turns a plaintext password into a storable credential record
// and verifies candidates against it. Construct once from config; the
// work factor is immutable afterwards.
type Codec struct {
	saltSize int
	cost     int
}

// NewCodec creates a Codec with the given salt length and bcrypt cost.
func NewCodec(saltSize, cost int) *Codec {
	return &Codec{saltSize: saltSize, cost: cost}
}

// GenerateSalt produces a random salt and a uniformly random insertion
// position in [0, plaintextLen). A zero-length plaintext always gets
// position 0.
func (c *Codec) GenerateSalt(plaintextLen int) (string, int, error) {
	if plaintextLen < 0 {
		return "", 0, fmt.Errorf("%w: negative plaintext length", model.ErrMalformedInput)
	}

	buf := make([]byte, c.saltSize)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", 0, fmt.Errorf("failed to draw salt byte: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}

	pos := 0
	if plaintextLen > 0 {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(plaintextLen)))
		if err != nil {
			return "", 0, fmt.Errorf("failed to draw salt position: %w", err)
		}
		pos = int(n.Int64())
	}

	return string(buf), pos, nil
}

// Apply splices salt into plaintext at pos. It fails with
// ErrMalformedInput when pos is outside [0, len(plaintext)].
func (c *Codec) Apply(plaintext, salt string, pos int) (string, error) {
	if pos < 0 || pos > len(plaintext) {
		return "", fmt.Errorf("%w: salt position %d out of range for plaintext length %d",
			model.ErrMalformedInput, pos, len(plaintext))
	}
	return plaintext[:pos] + salt + plaintext[pos:], nil
}

// Hash produces a bcrypt hash of the salted string. bcrypt salts
// internally, so hashing the same input twice yields different outputs;
// comparison must go through Verify, never string equality.
func (c *Codec) Hash(salted string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(salted), c.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

// Verify reapplies the stored salt at the stored position to the
// candidate and delegates to bcrypt's comparison. Malformed input of
// any kind yields false, never a panic or error.
func (c *Codec) Verify(candidate, salt string, pos int, storedHash string) bool {
	salted, err := c.Apply(candidate, salt, pos)
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(salted)) == nil
}
