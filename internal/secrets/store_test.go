package secrets

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/coffeechat/internal/common"
)

func newTestStore(t *testing.T) *KeyringStore {
	t.Helper()
	return NewWithKeyring(keyring.NewArrayKeyring(nil))
}

func TestKeyringStore_SetGetDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set(KeySMTPPassword, []byte("hunter2")))

	got, err := s.Get(KeySMTPPassword)
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), got)

	require.NoError(t, s.Delete(KeySMTPPassword))

	_, err = s.Get(KeySMTPPassword)
	require.ErrorIs(t, err, common.ErrSecretNotFound)
}

func TestKeyringStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(KeyOAuthToken)
	require.ErrorIs(t, err, common.ErrSecretNotFound)
}

func TestKeyringStore_SetOverwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set(KeyOAuthToken, []byte("old")))
	require.NoError(t, s.Set(KeyOAuthToken, []byte("new")))

	got, err := s.Get(KeyOAuthToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}
