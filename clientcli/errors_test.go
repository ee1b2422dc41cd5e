package clientcli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sirmackk/backuper-cli/clientcli"
	"github.com/stretchr/testify/assert"
)

func TestFault(t *testing.T) {
	t.Run("error message is surfaced verbatim", func(t *testing.T) {
		f := &clientcli.Fault{Kind: clientcli.KindRemote, StatusCode: 500, Message: "Internal Server Error"}
		assert.Equal(t, "Internal Server Error", f.Error())
	})

	t.Run("kind tags", func(t *testing.T) {
		assert.Equal(t, "caller_fault", clientcli.KindCaller.String())
		assert.Equal(t, "remote_fault", clientcli.KindRemote.String())
	})

	t.Run("kind predicates", func(t *testing.T) {
		caller := &clientcli.Fault{Kind: clientcli.KindCaller, Message: "missing file"}
		remote := &clientcli.Fault{Kind: clientcli.KindRemote, Message: "boom"}

		assert.True(t, clientcli.IsCallerFault(caller))
		assert.False(t, clientcli.IsRemoteFault(caller))
		assert.True(t, clientcli.IsRemoteFault(remote))
		assert.False(t, clientcli.IsCallerFault(remote))
	})

	t.Run("predicates see through wrapping", func(t *testing.T) {
		f := &clientcli.Fault{Kind: clientcli.KindCaller, Message: "missing file"}
		wrapped := fmt.Errorf("submit: %w", f)
		assert.True(t, clientcli.IsCallerFault(wrapped))
	})

	t.Run("errors.Is matches by kind", func(t *testing.T) {
		a := &clientcli.Fault{Kind: clientcli.KindRemote, StatusCode: 502, Message: "bad gateway"}
		b := &clientcli.Fault{Kind: clientcli.KindRemote, StatusCode: 500, Message: "other"}
		c := &clientcli.Fault{Kind: clientcli.KindCaller, Message: "other"}

		assert.True(t, errors.Is(a, b))
		assert.False(t, errors.Is(a, c))
	})

	t.Run("non-fault errors", func(t *testing.T) {
		err := errors.New("plain")
		assert.False(t, clientcli.IsCallerFault(err))
		assert.False(t, clientcli.IsRemoteFault(err))
	})
}
