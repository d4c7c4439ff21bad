package utils

import (
	"math/rand"
	"time"
)

const tempPasswordLength = 12
const passwordBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateTempPassword produces the one-time password handed to
// admin-created counselor accounts.
func GenerateTempPassword() string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	b := make([]byte, tempPasswordLength)
	for i := range b {
		b[i] = passwordBytes[seededRand.Intn(len(passwordBytes))]
	}
	return string(b)
}
