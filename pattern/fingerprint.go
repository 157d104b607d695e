// SPDX-License-Identifier: MIT

package pattern

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex BLAKE3-256 digest of an ordered pattern set.
// Each pattern contributes its ID and a length-prefixed copy of its bytes,
// so distinct sets cannot collide by concatenation.
func Fingerprint(ps []Pattern) string {
	hasher := blake3.New()
	var header [12]byte
	for _, p := range ps {
		binary.BigEndian.PutUint32(header[0:4], uint32(p.ID))
		binary.BigEndian.PutUint64(header[4:12], uint64(len(p.Bytes)))
		_, _ = hasher.Write(header[:])
		_, _ = hasher.Write(p.Bytes)
	}

	return hex.EncodeToString(hasher.Sum(nil))
}
