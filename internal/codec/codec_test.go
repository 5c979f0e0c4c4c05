package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64_RoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		{0x00},
		{0xff, 0xfe, 0xfd},
		[]byte("hello, fortress"),
		bytes.Repeat([]byte{0x00, 0x80, 0xff}, 1000),
	}
	for _, in := range inputs {
		got, err := DecodeBase64(EncodeBase64(in))
		require.NoError(t, err)
		assert.True(t, bytes.Equal(in, got), "round trip mismatch for %x", in)
	}
}

func TestEncodeBase64_StandardPadded(t *testing.T) {
	assert.Equal(t, "", EncodeBase64(nil))
	assert.Equal(t, "AA==", EncodeBase64([]byte{0}))
	assert.Equal(t, "+/8=", EncodeBase64([]byte{0xfb, 0xff}))
}

func TestDecodeBase64_Invalid(t *testing.T) {
	for _, s := range []string{"!!!", "AA=", "AAA", "A===", "ab cd"} {
		_, err := DecodeBase64(s)
		require.Error(t, err, "input %q", s)

		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "base64", de.Encoding)
		assert.NotNil(t, errors.Unwrap(err))
	}
}

func TestHex_RoundTripAndInvalid(t *testing.T) {
	in := []byte{0xde, 0xad, 0xbe, 0xef}
	s := EncodeHex(in)
	assert.Equal(t, "deadbeef", s)

	got, err := DecodeHex(s)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	_, err = DecodeHex("xyz")
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "hex", de.Encoding)
	assert.Contains(t, err.Error(), "invalid hex")
}
