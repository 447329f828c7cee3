package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birdayz/n85/pkg/n85"
)

func TestN85RoundTrip(t *testing.T) {
	var c Codec = N85{}
	enc, err := c.Encode([]byte("Abracadabra!12"))
	require.NoError(t, err)
	require.Equal(t, "Jo3CG^m_AG*Kwf26k)", string(enc))

	dec, err := c.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, "Abracadabra!12", string(dec))
}

func TestN85DecodeInvalidChar(t *testing.T) {
	_, err := N85{}.Decode([]byte("Jo3C\\"))
	require.ErrorIs(t, err, n85.ErrInvalidChar)
	require.ErrorContains(t, err, "offset 4")
}

func TestN85DecodeInvalidLength(t *testing.T) {
	_, err := N85{}.Decode([]byte("("))
	require.ErrorIs(t, err, n85.ErrInvalidLength)
}

func TestN85DecodeInvalidLengthWithBadByte(t *testing.T) {
	_, err := N85{}.Decode([]byte("\\((((("))
	require.ErrorIs(t, err, n85.ErrInvalidLength)
	require.NotErrorIs(t, err, n85.ErrInvalidChar)
	require.NotContains(t, err.Error(), "offset")
	require.ErrorContains(t, err, "failed to decode 6 bytes")
}
