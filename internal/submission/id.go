package submission

import (
	"crypto/rand"
	"math/big"
)

const (
	idLength   = 8
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var idBase = big.NewInt(int64(len(idAlphabet)))

// NewID returns an 8 character base-36 identifier drawn from crypto/rand.
// Uniqueness is enforced by the repository, which rejects duplicates with
// ErrDuplicateID.
func NewID() (string, error) {
	b := make([]byte, idLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, idBase)
		if err != nil {
			return "", err
		}
		b[i] = idAlphabet[n.Int64()]
	}
	return string(b), nil
}
