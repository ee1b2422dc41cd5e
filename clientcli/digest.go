package clientcli

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// digestBlockSize is the read block size used while hashing. Memory use
// stays bounded regardless of file size.
const digestBlockSize = 65536

// Digest computes the hex-encoded SHA-256 digest of r without loading it
// fully into memory. The stream is rewound to the start both before and
// after hashing, so the same handle can be handed straight to an upload
// body afterwards.
func Digest(r io.ReadSeeker) (string, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek to start: %w", err)
	}

	hasher := sha256.New()
	buf := make([]byte, digestBlockSize)
	if _, err := io.CopyBuffer(hasher, r, buf); err != nil {
		return "", fmt.Errorf("read for digest: %w", err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind after digest: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
