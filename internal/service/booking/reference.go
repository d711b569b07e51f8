package booking

import "math/rand/v2"

const (
	ReferenceLength   = 8
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewReference draws random references from rng until one is not in used.
// It does not modify used.
func NewReference(rng *rand.Rand, used map[string]struct{}) string {
	buf := make([]byte, ReferenceLength)
	for {
		for i := range buf {
			buf[i] = referenceAlphabet[rng.IntN(len(referenceAlphabet))]
		}
		ref := string(buf)
		if _, taken := used[ref]; !taken {
			return ref
		}
	}
}

func validReference(ref string) bool {
	if len(ref) != ReferenceLength {
		return false
	}
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
