// Package protocol holds the timing profiles of the supported
// remote control protocols.
//
// A profile describes one OOK symbol alphabet: every symbol is a high
// pulse followed by a low pause, and the duration of each part is a
// small multiple of the profile's base pulse length. Receiver and
// transmitter share the same table; they only differ in the pulse
// length they apply to it.
package protocol

import "errors"

// ErrInvalidProtocol is returned for protocol id 0 or an id outside the table.
var ErrInvalidProtocol = errors.New("invalid protocol id")

// Profile defines the pulse timing of one protocol.
// All durations are multiples of PulseLength (microseconds).
type Profile struct {
	// PulseLength is the base pulse length in microseconds.
	PulseLength int

	SyncHigh int
	SyncLow  int
	ZeroHigh int
	ZeroLow  int
	OneHigh  int
	OneLow   int
}

// profiles is the protocol table. Index 0 is reserved and invalid,
// protocol 1 is the common 350µs PT2262 style protocol most cheap
// 433MHz remotes use.
var profiles = [...]Profile{
	{},
	{PulseLength: 350, SyncHigh: 1, SyncLow: 31, ZeroHigh: 1, ZeroLow: 3, OneHigh: 3, OneLow: 1},
	{PulseLength: 650, SyncHigh: 1, SyncLow: 10, ZeroHigh: 1, ZeroLow: 2, OneHigh: 2, OneLow: 1},
	{PulseLength: 100, SyncHigh: 30, SyncLow: 71, ZeroHigh: 4, ZeroLow: 11, OneHigh: 9, OneLow: 6},
	{PulseLength: 380, SyncHigh: 1, SyncLow: 6, ZeroHigh: 1, ZeroLow: 3, OneHigh: 3, OneLow: 1},
	{PulseLength: 500, SyncHigh: 6, SyncLow: 14, ZeroHigh: 1, ZeroLow: 2, OneHigh: 2, OneLow: 1},
	{PulseLength: 200, SyncHigh: 1, SyncLow: 10, ZeroHigh: 1, ZeroLow: 5, OneHigh: 1, OneLow: 1},
}

// Get returns the profile of the given protocol id.
func Get(id int) (Profile, error) {
	if id <= 0 || id >= len(profiles) {
		return Profile{}, ErrInvalidProtocol
	}
	return profiles[id], nil
}

// Count returns the number of valid protocol ids (1..Count()).
func Count() int {
	return len(profiles) - 1
}
