package test

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomEmail returns a pseudo-random mailbox on example.com.
func RandomEmail() string {
	buf := make([]byte, 10)
	rngMu.Lock()
	for i := range buf {
		buf[i] = asciiLetters[rng.Intn(len(asciiLetters))]
	}
	rngMu.Unlock()
	return fmt.Sprintf("%s@example.com", buf)
}
