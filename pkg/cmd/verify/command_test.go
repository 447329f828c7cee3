package verify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	r := Check([]byte("Jo3CG^m_AG*Kwf2"))
	require.True(t, r.Valid)
	require.Equal(t, 15, r.EncodedLength)
	require.Equal(t, 12, r.DecodedLength)
	require.Nil(t, r.InvalidOffset)
	require.Empty(t, r.Error)

	r = Check([]byte("Jo3CG^"))
	require.False(t, r.Valid)
	require.Nil(t, r.InvalidOffset)
	require.Contains(t, r.Error, "invalid input length")

	r = Check([]byte("Jo\x073C"))
	require.False(t, r.Valid)
	require.Equal(t, 2, *r.InvalidOffset)
	require.Equal(t, "0x07", r.InvalidByte)
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, Check([]byte("Jo~")))
	require.Contains(t, buf.String(), "false")
	require.Contains(t, buf.String(), "0x7e at offset 2")
}
