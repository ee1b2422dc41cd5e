package clientcli_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/sirmackk/backuper-cli/clientcli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	t.Run("known vector", func(t *testing.T) {
		content := []byte(strings.Repeat("1234", 10))
		sum := sha256.Sum256(content)

		digest, err := clientcli.Digest(bytes.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(sum[:]), digest)
	})

	t.Run("deterministic", func(t *testing.T) {
		content := []byte("some archive payload")

		first, err := clientcli.Digest(bytes.NewReader(content))
		require.NoError(t, err)
		second, err := clientcli.Digest(bytes.NewReader(content))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("rewinds stream for reuse", func(t *testing.T) {
		content := []byte("reused as upload body")
		r := bytes.NewReader(content)

		_, err := clientcli.Digest(r)
		require.NoError(t, err)

		rest, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, content, rest)
	})

	t.Run("hashes from start regardless of position", func(t *testing.T) {
		content := []byte("position should not matter")
		r := bytes.NewReader(content)
		_, err := r.Seek(5, io.SeekStart)
		require.NoError(t, err)

		digest, err := clientcli.Digest(r)
		require.NoError(t, err)

		sum := sha256.Sum256(content)
		assert.Equal(t, hex.EncodeToString(sum[:]), digest)
	})

	t.Run("larger than one block", func(t *testing.T) {
		content := bytes.Repeat([]byte{0xab}, 65536*3+17)
		sum := sha256.Sum256(content)

		digest, err := clientcli.Digest(bytes.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(sum[:]), digest)
	})
}
