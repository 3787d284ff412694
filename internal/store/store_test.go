package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "state.json")
	st, err := Open(path)
	require.NoError(t, err)
	return st, path
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	st, _ := tempStore(t)

	assert.Empty(t, st.Token())
	assert.Empty(t, st.RefreshToken())
	assert.Empty(t, st.Wishlist())
	assert.Equal(t, DefaultCurrency, st.Currency())
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestStatePersistsAcrossOpens(t *testing.T) {
	st, path := tempStore(t)

	require.NoError(t, st.SetToken("access-1"))
	require.NoError(t, st.SetRefreshToken("refresh-1"))
	require.NoError(t, st.SetCurrency("USD"))
	_, err := st.ToggleWishlist(7)
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, "access-1", reopened.Token())
	assert.Equal(t, "refresh-1", reopened.RefreshToken())
	assert.Equal(t, "USD", reopened.Currency())
	assert.Equal(t, []int{7}, reopened.Wishlist())
}

func TestStateFileIsPrivate(t *testing.T) {
	st, path := tempStore(t)
	require.NoError(t, st.SetToken("secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestClearTokensEndsSession(t *testing.T) {
	st, _ := tempStore(t)
	require.NoError(t, st.SetToken("access-1"))
	require.NoError(t, st.SetRefreshToken("refresh-1"))

	require.NoError(t, st.ClearTokens())

	assert.Empty(t, st.Token())
	assert.Empty(t, st.RefreshToken())
}

func TestToggleWishlistFlips(t *testing.T) {
	st, _ := tempStore(t)

	added, err := st.ToggleWishlist(3)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, st.InWishlist(3))

	added, err = st.ToggleWishlist(3)
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, st.InWishlist(3))
	assert.Empty(t, st.Wishlist())
}

func TestWishlistStaysSorted(t *testing.T) {
	st, _ := tempStore(t)

	for _, id := range []int{9, 2, 5} {
		_, err := st.ToggleWishlist(id)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{2, 5, 9}, st.Wishlist())
}

func TestWishlistReturnsCopy(t *testing.T) {
	st, _ := tempStore(t)
	_, err := st.ToggleWishlist(1)
	require.NoError(t, err)

	ids := st.Wishlist()
	ids[0] = 99

	assert.Equal(t, []int{1}, st.Wishlist())
}
