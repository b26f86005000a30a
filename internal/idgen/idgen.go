// Package idgen isolates the two ambient inputs of generation: the clock
// used for injected timestamps and the random source used for synthesized
// ids. Production code uses the real implementations; tests substitute the
// deterministic ones so generated output is byte-comparable.
package idgen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Source generates ids in the formats the supported backends use natively.
type Source interface {
	// ObjectID returns a 24-hex-character MongoDB object id.
	ObjectID() string
	// ShortID returns an alphanumeric id of length n (Firestore-style).
	ShortID(n int) string
	// UUID returns a canonical UUID string.
	UUID() string
}

// RandomSource is the production Source.
type RandomSource struct{}

func (RandomSource) ObjectID() string {
	return bson.NewObjectID().Hex()
}

const shortIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func (RandomSource) ShortID(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(shortIDAlphabet[rand.Intn(len(shortIDAlphabet))])
	}
	return b.String()
}

func (RandomSource) UUID() string {
	return uuid.NewString()
}

// FixedClock always returns T. Test helper.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

// SequenceSource returns predictable ids: each call increments a counter
// rendered into the requested format. Test helper.
type SequenceSource struct {
	n int
}

func (s *SequenceSource) next() int {
	s.n++
	return s.n
}

func (s *SequenceSource) ObjectID() string {
	return fmt.Sprintf("%024x", s.next())
}

func (s *SequenceSource) ShortID(n int) string {
	id := fmt.Sprintf("id%d", s.next())
	for len(id) < n {
		id += "x"
	}
	return id[:n]
}

func (s *SequenceSource) UUID() string {
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", s.next())
}
