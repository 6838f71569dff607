package world

import (
	"fmt"
	"math/rand"
)

// CodeAlphabet is the character set for generated access codes. It excludes
// the ambiguous characters 0, O, I and L.
const CodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ123456789"

// CodeLength is the length of a generated guest/backup code.
const CodeLength = 10

// CodeMaxAttempts bounds collision retries before Generate fails loudly.
const CodeMaxAttempts = 10

// CodeGenerator produces random identifier codes with collision retry.
// The rand source is injected so tests are deterministic.
type CodeGenerator struct {
	rng *rand.Rand
}

// NewCodeGenerator creates a generator over the given source.
func NewCodeGenerator(rng *rand.Rand) *CodeGenerator {
	return &CodeGenerator{rng: rng}
}

// Generate returns a fresh CodeLength-character code for which taken reports
// false. It retries up to CodeMaxAttempts times and returns an error when the
// space appears exhausted.
func (g *CodeGenerator) Generate(taken func(code string) bool) (string, error) {
	for attempt := 0; attempt < CodeMaxAttempts; attempt++ {
		buf := make([]byte, CodeLength)
		for i := range buf {
			buf[i] = CodeAlphabet[g.rng.Intn(len(CodeAlphabet))]
		}
		code := string(buf)
		if taken == nil || !taken(code) {
			return code, nil
		}
	}
	return "", fmt.Errorf("code generation exhausted after %d attempts", CodeMaxAttempts)
}
