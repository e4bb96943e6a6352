// Package cache stores lint reports keyed by file contents and rule
// configuration.
//
// Key format: {xxhash64(path \0 fingerprint \0 contents)} as 16 hex digits.
// Changing the hashed fields or their order invalidates every cached report.
package cache

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Key returns the cache key for one file. fingerprint identifies the rule
// configuration the report was produced with; see Fingerprint.
func Key(path, fingerprint, contents string) string {
	d := xxhash.New()
	d.WriteString(path)
	d.Write([]byte{0})
	d.WriteString(fingerprint)
	d.Write([]byte{0})
	d.WriteString(contents)
	return fmt.Sprintf("%016x", d.Sum64())
}

// Fingerprint hashes a canonical configuration rendering, such as
// linter.Configuration.String.
func Fingerprint(canonical string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(canonical))
}
