// Package protocol implements the length-prefixed wire format shared by the
// chat server and its clients.
//
// Every message on the wire is a fixed 4-byte header followed by the body:
//
//	HEADER(4 bytes) ++ BODY(bodyLength bytes)
//
// The header is the decimal body length, right-justified within exactly four
// bytes (a 5-byte body encodes as "   5"). The next header begins immediately
// after the previous body's last byte, so bodies may contain arbitrary bytes.
package protocol

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// HeaderSize is the fixed byte count of the length header.
	HeaderSize = 4
	// MaxBodySize is the largest body a single message may carry.
	MaxBodySize = 512
)

var (
	// ErrBodyTooLarge is returned when building a message whose body exceeds
	// MaxBodySize. This is a local construction error, not a peer fault.
	ErrBodyTooLarge = errors.New("protocol: body exceeds maximum size")

	// ErrInvalidHeader is returned when a header does not decode to an
	// integer in [0, MaxBodySize]. The framing of the stream cannot be
	// trusted afterwards, so the peer must be disconnected.
	ErrInvalidHeader = errors.New("protocol: invalid header")
)

// Message is one framed unit. It is immutable once built; the body is never
// shared with the caller's slice.
type Message struct {
	body []byte
}

// New builds a Message from body, copying it. Returns ErrBodyTooLarge if the
// body exceeds MaxBodySize.
func New(body []byte) (Message, error) {
	if len(body) > MaxBodySize {
		return Message{}, fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, len(body))
	}
	b := make([]byte, len(body))
	copy(b, body)
	return Message{body: b}, nil
}

// Body returns the message payload. Callers must not modify it.
func (m Message) Body() []byte {
	return m.body
}

// Len returns the body length in bytes.
func (m Message) Len() int {
	return len(m.body)
}

// Encode renders the complete wire form: header followed by body.
func (m Message) Encode() []byte {
	buf := make([]byte, 0, HeaderSize+len(m.body))
	buf = append(buf, encodeHeader(len(m.body))...)
	buf = append(buf, m.body...)
	return buf
}

// encodeHeader renders n right-justified in exactly HeaderSize bytes.
func encodeHeader(n int) []byte {
	return []byte(fmt.Sprintf("%*d", HeaderSize, n))
}

// DecodeHeader parses a length header. Returns ErrInvalidHeader unless the
// header is a right-justified decimal in [0, MaxBodySize].
func DecodeHeader(header []byte) (int, error) {
	if len(header) != HeaderSize {
		return 0, fmt.Errorf("%w: got %d header bytes", ErrInvalidHeader, len(header))
	}
	n, err := strconv.Atoi(strings.TrimLeft(string(header), " "))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHeader, header)
	}
	if n < 0 || n > MaxBodySize {
		return 0, fmt.Errorf("%w: length %d out of range", ErrInvalidHeader, n)
	}
	return n, nil
}

// ReadMessage reads exactly one framed message from r. The stream may deliver
// bytes in arbitrary chunks; reads are driven purely by the declared length.
// A malformed header yields ErrInvalidHeader; transport failures surface as
// the underlying read error (io.EOF on a clean close before a header).
func ReadMessage(r io.Reader) (Message, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Message{}, err
	}
	n, err := DecodeHeader(header[:])
	if err != nil {
		return Message{}, err
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return Message{}, err
	}
	return Message{body: body}, nil
}
