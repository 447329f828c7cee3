package app

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/birdayz/n85/pkg/codec"
	"github.com/birdayz/n85/pkg/stream"
)

// Op selects the direction of a run.
type Op int

const (
	OpEncode Op = iota
	OpDecode
)

func (o Op) String() string {
	if o == OpDecode {
		return "decode"
	}
	return "encode"
}

// Run reads the input named by args, converts it in the given direction and
// writes the result to OutWriter.
func (a *App) Run(ctx context.Context, op Op, mode InputMode, args []string) error {
	in, closeInput, err := a.OpenInput(args)
	if err != nil {
		return err
	}
	defer closeInput()

	a.Log.WithField("mode", mode).Debugf("starting %s", op)

	switch mode {
	case InputModeLine:
		return a.runLines(ctx, op, in)
	case InputModeFull:
		return a.runFull(op, in)
	default:
		var st stream.Stats
		if op == OpDecode {
			st, err = stream.Decode(ctx, a.OutWriter, in, a.StreamOptions())
		} else {
			st, err = stream.Encode(ctx, a.OutWriter, in, a.StreamOptions())
		}
		if err != nil {
			return fmt.Errorf("%s failed after %d bytes: %w", op, st.BytesIn, err)
		}
		return nil
	}
}

func (a *App) convert(op Op, data []byte) ([]byte, error) {
	var c codec.Codec = codec.N85{}
	if op == OpDecode {
		if a.Cfg.TrimSpace {
			data = stream.TrimSpace(data)
		}
		return c.Decode(data)
	}
	return c.Encode(data)
}

func (a *App) runFull(op Op, in io.Reader) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("unable to read data: %w", err)
	}
	res, err := a.convert(op, data)
	if err != nil {
		return err
	}
	if _, err := a.OutWriter.Write(res); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}

func (a *App) runLines(ctx context.Context, op Op, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make(chan []byte, 1)
	errCh := make(chan error, 1)
	go readLines(ctx, in, out, errCh, a.Cfg.BlockSize*2)

	line := 0
	for data := range out {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := a.convert(op, data)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		res = append(res, '\n')
		if _, err := a.OutWriter.Write(res); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
	}

	return <-errCh
}

// readLines sends every line of reader on out, then closes out and sends
// exactly one value on errCh: the scan error, or nil. It stops early once
// ctx is done.
func readLines(ctx context.Context, reader io.Reader, out chan<- []byte, errCh chan<- error, bufferSize int) {
	defer close(out)

	scanner := bufio.NewScanner(reader)
	if bufferSize > bufio.MaxScanTokenSize {
		scanner.Buffer(make([]byte, bufferSize), bufferSize)
	}
	for scanner.Scan() {
		select {
		case out <- bytes.Clone(scanner.Bytes()):
		case <-ctx.Done():
			errCh <- ctx.Err()
			return
		}
	}
	if err := scanner.Err(); err != nil {
		errCh <- fmt.Errorf("scanning input failed: %w", err)
		return
	}
	errCh <- nil
}
