package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// referenceAlphabet avoids characters that need URL escaping; references end
// up in request paths.
const referenceAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomReference returns an opaque identifier suitable for handing to
// clients in place of a row id.
func RandomReference(length int) (string, error) {
	return RandomString(length, referenceAlphabet)
}

// RandomString returns a cryptographically secure, unbiased string of the
// requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}
