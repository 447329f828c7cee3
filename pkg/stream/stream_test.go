package stream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/birdayz/n85/pkg/n85"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func readers() map[string]func([]byte) io.Reader {
	return map[string]func([]byte) io.Reader{
		"bytes":    func(b []byte) io.Reader { return bytes.NewReader(b) },
		"one byte": func(b []byte) io.Reader { return iotest.OneByteReader(bytes.NewReader(b)) },
		"half":     func(b []byte) io.Reader { return iotest.HalfReader(bytes.NewReader(b)) },
		"data err": func(b []byte) io.Reader { return iotest.DataErrReader(bytes.NewReader(b)) },
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ctx := context.Background()
	sizes := []int{0, 1, 2, 3, 4, 5, 31, 32, 33, 100, 257, 1023}

	for name, mk := range readers() {
		for _, bs := range []int{4, 8, 12, 64, 0} {
			for _, l := range sizes {
				src := make([]byte, l)
				rng.Read(src)
				opts := Options{BlockSize: bs, TrimSpace: true}

				var enc bytes.Buffer
				st, err := Encode(ctx, &enc, mk(src), opts)
				require.NoError(t, err, "%s bs=%d len=%d", name, bs, l)
				require.Equal(t, n85.EncodeToString(src), enc.String(), "%s bs=%d len=%d", name, bs, l)
				require.Equal(t, int64(l), st.BytesIn)
				require.Equal(t, int64(enc.Len()), st.BytesOut)

				var dec bytes.Buffer
				_, err = Decode(ctx, &dec, mk(enc.Bytes()), opts)
				require.NoError(t, err, "%s bs=%d len=%d", name, bs, l)
				require.Equal(t, src, append([]byte{}, dec.Bytes()...), "%s bs=%d len=%d", name, bs, l)
			}
		}
	}
}

func TestEncodeBlocks(t *testing.T) {
	var out bytes.Buffer
	st, err := Encode(context.Background(), &out, strings.NewReader("Abracadabra!1"), Options{BlockSize: 4})
	require.NoError(t, err)
	require.Equal(t, "Jo3CG^m_AG*Kwf2Y(", out.String())
	require.Equal(t, Stats{BytesIn: 13, BytesOut: 17, Blocks: 4}, st)
}

func TestEncodeEmpty(t *testing.T) {
	var out bytes.Buffer
	st, err := Encode(context.Background(), &out, strings.NewReader(""), Options{})
	require.NoError(t, err)
	require.Zero(t, out.Len())
	require.Equal(t, Stats{}, st)
}

func TestDecodeTrimsTrailingNewline(t *testing.T) {
	var out bytes.Buffer
	_, err := Decode(context.Background(), &out, strings.NewReader("Jo3CG^m_AG*Kwf2Y(\n"), Options{TrimSpace: true})
	require.NoError(t, err)
	require.Equal(t, "Abracadabra!1", out.String())
}

func TestDecodeNewlineInOwnBlock(t *testing.T) {
	var out bytes.Buffer
	_, err := Decode(context.Background(), &out, strings.NewReader("Jo3CG^m_AG\r\n"), Options{BlockSize: 8, TrimSpace: true})
	require.NoError(t, err)
	require.Equal(t, "Abracada", out.String())
}

func TestDecodeWithoutTrim(t *testing.T) {
	_, err := Decode(context.Background(), io.Discard, strings.NewReader("Jo3CG^m_AG*Kwf2Y(\n"), Options{})
	require.ErrorIs(t, err, n85.ErrInvalidChar)
}

func TestDecodeInvalidInput(t *testing.T) {
	_, err := Decode(context.Background(), io.Discard, strings.NewReader("Jo3CG^m_AG~Kwf2"), Options{BlockSize: 4})
	require.ErrorIs(t, err, n85.ErrInvalidChar)
	require.ErrorContains(t, err, "block 2 at offset 10")

	_, err = Decode(context.Background(), io.Discard, strings.NewReader("Jo3CG^"), Options{})
	require.ErrorIs(t, err, n85.ErrInvalidLength)
}

func TestBlockSize(t *testing.T) {
	for _, bs := range []int{-4, 3, 6, 10} {
		_, err := Encode(context.Background(), io.Discard, strings.NewReader("x"), Options{BlockSize: bs})
		require.ErrorIs(t, err, ErrBlockSize, "bs=%d", bs)
		_, err = Decode(context.Background(), io.Discard, strings.NewReader("x"), Options{BlockSize: bs})
		require.ErrorIs(t, err, ErrBlockSize, "bs=%d", bs)
	}
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Encode(ctx, io.Discard, strings.NewReader("data"), Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadError(t *testing.T) {
	_, err := Encode(context.Background(), io.Discard, iotest.ErrReader(errors.New("boom")), Options{})
	require.ErrorContains(t, err, "unable to read input: boom")

	r := io.MultiReader(strings.NewReader("ab"), iotest.ErrReader(errors.New("boom")))
	_, err = Encode(context.Background(), io.Discard, r, Options{})
	require.ErrorContains(t, err, "boom")
}

func TestWriteError(t *testing.T) {
	_, err := Encode(context.Background(), failWriter{}, strings.NewReader("data"), Options{})
	require.ErrorContains(t, err, "unable to write output: disk full")
}

func TestLogsStats(t *testing.T) {
	var logs bytes.Buffer
	l := logrus.New()
	l.SetOutput(&logs)
	l.SetLevel(logrus.DebugLevel)

	_, err := Encode(context.Background(), io.Discard, strings.NewReader("Abracadabra!"), Options{BlockSize: 8, Log: l})
	require.NoError(t, err)
	require.Contains(t, logs.String(), "stream finished")
	require.Contains(t, logs.String(), "blocks=2")
	require.Contains(t, logs.String(), "op=encode")
}

func TestTrimSpace(t *testing.T) {
	require.Equal(t, "Jo3CG", string(TrimSpace([]byte(" \tJo3CG\r\n"))))
	require.Equal(t, "Jo3\nCG", string(TrimSpace([]byte("Jo3\nCG\f"))))
	require.Empty(t, TrimSpace([]byte("\n\n")))
	// Vertical tab is not stripped.
	require.Equal(t, "\vJo", string(TrimSpace([]byte("\vJo"))))
}
