package prototype

import (
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWIF    = "5KQwrPbwdL6PhXujxW37FSSQZ1JiwsST4cqQzDeyXtP79zkvFD3"
	testPubKey = "GXC6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CV"
	nullPubKey = "GXC1111111111111111111111111111111114T1Anm"
)

func TestPrivateKeyFromWIF(t *testing.T) {
	key, err := PrivateKeyFromWIF("5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ")
	require.NoError(t, err)
	assert.Equal(t, "0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d", hex.EncodeToString(key.Bytes()))
	assert.Equal(t, "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ", key.ToWIF())
}

func TestPublicKeyOfWIF(t *testing.T) {
	key, err := PrivateKeyFromWIF(testWIF)
	require.NoError(t, err)
	assert.Equal(t, testPubKey, key.PubKey().String())

	pub, err := PublicKeyFromString(testPubKey)
	require.NoError(t, err)
	assert.True(t, pub.Equal(key.PubKey()))
}

func TestMalformedWIF(t *testing.T) {
	for _, s := range []string{"", "abc", "0OIl", testWIF[:len(testWIF)-1] + "4", testPubKey} {
		_, err := PrivateKeyFromWIF(s)
		assert.True(t, errors.Is(err, ErrInvalidKeyFormat), "input %q", s)
	}
}

func TestNullPublicKey(t *testing.T) {
	pub, err := PublicKeyFromString(nullPubKey)
	require.NoError(t, err)
	assert.True(t, pub.IsNull())
	assert.Equal(t, nullPubKey, pub.String())
	assert.True(t, IsNullKeyString(nullPubKey))
	assert.False(t, IsNullKeyString(testPubKey))
}

func TestPublicKeyBadPrefix(t *testing.T) {
	_, err := PublicKeyFromString("BTS6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CV")
	assert.True(t, errors.Is(err, ErrInvalidKeyFormat))
	_, err = PublicKeyFromString("GXC6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CW")
	assert.True(t, errors.Is(err, ErrInvalidKeyFormat))
}

func TestPrivateKeyFromSeed(t *testing.T) {
	a, err := PrivateKeyFromSeed("correct horse")
	require.NoError(t, err)
	b, err := PrivateKeyFromSeed("correct horse")
	require.NoError(t, err)
	c, err := PrivateKeyFromSeed("")
	require.NoError(t, err)
	assert.Equal(t, a.PubKey().String(), b.PubKey().String())
	assert.NotEqual(t, a.PubKey().String(), c.PubKey().String())
}

func TestBrainKeyNormalization(t *testing.T) {
	a, err := PrivateKeyFromBrainKey("  ALPHA   BRAVO\tCHARLIE ")
	require.NoError(t, err)
	b, err := PrivateKeyFromBrainKey("ALPHA BRAVO CHARLIE")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestWIFRoundTrip(t *testing.T) {
	for i := 0; i < 16; i++ {
		k, err := GenerateNewKey()
		require.NoError(t, err)
		back, err := PrivateKeyFromWIF(k.ToWIF())
		require.NoError(t, err)
		assert.True(t, k.Equal(back))

		pub, err := PublicKeyFromString(k.PubKey().String())
		require.NoError(t, err)
		assert.True(t, pub.Equal(k.PubKey()))
	}
}
