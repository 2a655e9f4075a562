package io

import (
	"io"
)

// Tape is a sequential output channel backed by an io.Writer.
// A zero Capacity means the tape is unbounded.
type Tape struct {
	Output   io.Writer
	Capacity int // Maximum bytes written before ErrChannelFull.

	Written int // Bytes written since the last rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind resets the written byte counter. Output already sent stays sent.
func (tc *Tape) Rewind() {
	tc.Written = 0
}

// Send writes data to the output writer.
func (tc *Tape) Send(data []byte) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	if tc.Capacity > 0 && tc.Written+len(data) > tc.Capacity {
		err = ErrChannelFull
		return
	}

	n, err := tc.Output.Write(data)
	tc.Written += n

	return
}
