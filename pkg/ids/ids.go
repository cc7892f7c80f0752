// Package ids generates the storefront's time-plus-random identifiers.
// Collisions are treated as impossible rather than checked; the suffix
// carries enough entropy for that assumption to hold.
package ids

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Suffix returns n random lowercase base36 characters.
func Suffix(n int) string {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is
			// broken; fall back to a fixed character rather than
			// panic inside request handling.
			b.WriteByte('0')
			continue
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String()
}

// UpperSuffix returns n random uppercase base36 characters.
func UpperSuffix(n int) string {
	return strings.ToUpper(Suffix(n))
}

// New returns <prefix><unix-millis><9 uppercase base36 chars>, the id
// format used for products and orders.
func New(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%d%s", prefix, now.UnixMilli(), UpperSuffix(9))
}
