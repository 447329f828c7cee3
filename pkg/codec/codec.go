package codec

import (
	"errors"
	"fmt"

	"github.com/birdayz/n85/pkg/n85"
)

// Encoder converts raw bytes to their text representation.
type Encoder interface {
	Encode(in []byte) ([]byte, error)
}

// Decoder converts a text representation back to raw bytes.
type Decoder interface {
	Decode(in []byte) ([]byte, error)
}

// Codec is both an Encoder and a Decoder.
type Codec interface {
	Encoder
	Decoder
}

// N85 encodes and decodes with the n85 package, allocating exactly sized
// output slices.
type N85 struct{}

func (N85) Encode(in []byte) ([]byte, error) {
	out := make([]byte, n85.EncodedLen(len(in)))
	n, err := n85.Encode(out, in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %d bytes: %w", len(in), err)
	}
	return out[:n], nil
}

func (N85) Decode(in []byte) ([]byte, error) {
	out := make([]byte, n85.DecodedLen(len(in)))
	n, err := n85.Decode(out, in)
	if err != nil {
		if i := n85.IndexInvalid(in); i >= 0 && errors.Is(err, n85.ErrInvalidChar) {
			return nil, fmt.Errorf("failed to decode: byte %#04x at offset %d: %w", in[i], i, err)
		}
		return nil, fmt.Errorf("failed to decode %d bytes: %w", len(in), err)
	}
	return out[:n], nil
}
