package security

import (
	"crypto/rand"
	"errors"
)

// TemporaryPasswordAlphabet leaves out characters that are easy to misread
// (0/O, 1/l/I).
const TemporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const MinTemporaryPasswordLength = 12

var (
	errNegativeLength = errors.New("length must be non-negative")
	errAlphabetSize   = errors.New("alphabet must hold between 1 and 256 characters")
)

// RandomString draws length characters uniformly from alphabet using
// crypto/rand. Bytes above the largest multiple of the alphabet size are
// rejected so no character is favoured.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errAlphabetSize
	}
	if length == 0 {
		return "", nil
	}

	size := len(alphabet)
	ceiling := 256 - 256%size
	result := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(result) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, value := range buffer {
			if int(value) >= ceiling {
				continue
			}
			result = append(result, alphabet[int(value)%size])
			if len(result) == length {
				break
			}
		}
	}
	return string(result), nil
}

// TemporaryPassword returns a one-off password for administrative resets.
func TemporaryPassword(length int) (string, error) {
	if length < MinTemporaryPasswordLength {
		length = MinTemporaryPasswordLength
	}
	return RandomString(length, TemporaryPasswordAlphabet)
}
