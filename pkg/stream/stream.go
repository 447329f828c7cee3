// Package stream drives the n85 codec over an io.Reader in fixed blocks.
//
// Blocks are aligned to whole groups (4 raw bytes or 5 symbols) by issuing
// extra reads, so only the final block of a stream can hold a short group.
package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/birdayz/n85/pkg/logger"
	"github.com/birdayz/n85/pkg/n85"
)

// DefaultBlockSize is the number of raw bytes handled per block.
const DefaultBlockSize = 1 << 13

// asciiSpace is trimmed from both ends of each decode block.
const asciiSpace = " \t\n\f\r"

// ErrBlockSize is returned for block sizes that would split a group.
var ErrBlockSize = errors.New("block size must be a positive multiple of 4")

type Options struct {
	// BlockSize is the raw side of a block. Decoding reads BlockSize*5/4
	// symbols at a time. Zero means DefaultBlockSize.
	BlockSize int
	// TrimSpace strips surrounding ASCII whitespace from every decode block.
	TrimSpace bool
	Log       logrus.FieldLogger
}

// Stats counts what a single Encode or Decode call moved.
type Stats struct {
	BytesIn  int64
	BytesOut int64
	Blocks   int64
}

func (o Options) normalize() (Options, error) {
	if o.BlockSize == 0 {
		o.BlockSize = DefaultBlockSize
	}
	if o.BlockSize < 0 || o.BlockSize%4 != 0 {
		return o, fmt.Errorf("%w: got %d", ErrBlockSize, o.BlockSize)
	}
	if o.Log == nil {
		o.Log = logger.Discard()
	}
	return o, nil
}

// Encode reads raw bytes from r until EOF and writes their encoding to w.
func Encode(ctx context.Context, w io.Writer, r io.Reader, opts Options) (Stats, error) {
	opts, err := opts.normalize()
	if err != nil {
		return Stats{}, err
	}
	in := make([]byte, opts.BlockSize)
	out := make([]byte, n85.EncodedLen(opts.BlockSize))
	p := pump{group: 4, log: opts.Log.WithField("op", "encode")}
	return p.run(ctx, w, r, in, func(block []byte) ([]byte, error) {
		n, err := n85.Encode(out, block)
		return out[:n], err
	})
}

// Decode reads symbols from r until EOF and writes the decoded bytes to w.
func Decode(ctx context.Context, w io.Writer, r io.Reader, opts Options) (Stats, error) {
	opts, err := opts.normalize()
	if err != nil {
		return Stats{}, err
	}
	in := make([]byte, opts.BlockSize*5/4)
	out := make([]byte, opts.BlockSize)
	p := pump{group: 5, trim: opts.TrimSpace, log: opts.Log.WithField("op", "decode")}
	return p.run(ctx, w, r, in, func(block []byte) ([]byte, error) {
		n, err := n85.Decode(out, block)
		return out[:n], err
	})
}

// TrimSpace strips the surrounding ASCII whitespace a decode block may carry.
func TrimSpace(b []byte) []byte {
	return bytes.Trim(b, asciiSpace)
}

type pump struct {
	group int
	trim  bool
	log   logrus.FieldLogger
}

func (p pump) run(ctx context.Context, w io.Writer, r io.Reader, buf []byte, convert func([]byte) ([]byte, error)) (Stats, error) {
	var st Stats
	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		n, eof, err := readBlock(r, buf, p.group)
		if err != nil {
			return st, fmt.Errorf("unable to read input: %w", err)
		}
		if n == 0 && eof {
			break
		}

		block := buf[:n]
		if p.trim {
			block = TrimSpace(block)
		}
		res, err := convert(block)
		if err != nil {
			return st, fmt.Errorf("block %d at offset %d: %w", st.Blocks, st.BytesIn, err)
		}
		if _, err := w.Write(res); err != nil {
			return st, fmt.Errorf("unable to write output: %w", err)
		}

		st.BytesIn += int64(n)
		st.BytesOut += int64(len(res))
		st.Blocks++
		p.log.WithFields(logrus.Fields{"block": st.Blocks, "in": n, "out": len(res)}).Debug("processed block")

		if eof {
			break
		}
	}
	p.log.WithFields(logrus.Fields{
		"blocks":    st.Blocks,
		"bytes_in":  st.BytesIn,
		"bytes_out": st.BytesOut,
	}).Debug("stream finished")
	return st, nil
}

// readBlock fills buf with at least one read, then tops it up to a multiple
// of group. len(buf) must be a multiple of group. eof reports that r is
// exhausted and no further call should be made.
func readBlock(r io.Reader, buf []byte, group int) (n int, eof bool, err error) {
	n, err = io.ReadAtLeast(r, buf, 1)
	if err == io.EOF {
		return 0, true, nil
	}
	if err != nil {
		return n, false, err
	}

	if rem := n % group; rem != 0 {
		m, err := io.ReadFull(r, buf[n:n+group-rem])
		n += m
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return n, true, nil
		}
		if err != nil {
			return n, false, err
		}
	}
	return n, false, nil
}
