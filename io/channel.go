// Package io provides output channel implementations for the LS-8 emulator.
// The CPU sends the text of PRN and the raw byte of PRA to the attached channel.
package io

// Channel defines the interface for LS-8 output channels.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes data to the channel.
	Send(data []byte) error
}
