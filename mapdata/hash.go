package mapdata

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DomainSnapshot is the domain prefix for snapshot content hashes.
// The version suffix enables future algorithm migration.
const DomainSnapshot = "vacmap/snapshot/v1"

// hashWithDomain computes SHA-256 with domain separation. The null
// byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SnapshotHash computes the content-addressed identity of a parsed
// map. Two MapData values with the same serialized layers hash
// identically, regardless of parse order or process. Used by the
// snapshot store to deduplicate writes.
func SnapshotHash(m *MapData) (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("snapshot hash: marshal: %w", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return "", fmt.Errorf("snapshot hash: normalize: %w", err)
	}
	canonical, err := MarshalCanonical(generic)
	if err != nil {
		return "", fmt.Errorf("snapshot hash: canonicalize: %w", err)
	}
	return hashWithDomain(DomainSnapshot, canonical), nil
}

// MustSnapshotHash is like SnapshotHash but panics on error. Use only
// in tests or when inputs are known to be valid.
func MustSnapshotHash(m *MapData) string {
	h, err := SnapshotHash(m)
	if err != nil {
		panic(err)
	}
	return h
}
