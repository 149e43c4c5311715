// Package util contains any functions used across the application that don't match
// any other package
package util

import (
	"math/rand"
	"time"
	"unsafe"
)

const alpha = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Six bits cover the 52-letter alphabet, so one Int63 call yields up
// to ten usable indices before a refill.
const (
	alphaIdxBits = 6
	alphaIdxMask = 1<<alphaIdxBits - 1
	alphaIdxMax  = 63 / alphaIdxBits
)

var randSrc = rand.NewSource(time.Now().UnixNano())

// RandStr returns n random letters. Not cryptographically secure, it
// only tags log lines with request IDs. Session and verification tokens
// come from GenerateToken instead.
func RandStr(n int) string {
	b := make([]byte, n)

	cache, remain := randSrc.Int63(), alphaIdxMax
	for i := n - 1; i >= 0; {
		if remain == 0 {
			cache, remain = randSrc.Int63(), alphaIdxMax
		}

		if idx := int(cache & alphaIdxMask); idx < len(alpha) {
			b[i] = alpha[idx]
			i--
		}

		cache >>= alphaIdxBits
		remain--
	}

	return *(*string)(unsafe.Pointer(&b))
}
