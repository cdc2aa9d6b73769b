package pkg

import (
	cryptoRand "crypto/rand"
	"math/big"
	"strings"
)

const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandInviteCode returns an n-character invitation code drawn from an
// unambiguous uppercase alphabet.
func RandInviteCode(n int) (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(inviteAlphabet)))
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(inviteAlphabet[x.Int64()])
	}
	return b.String(), nil
}
