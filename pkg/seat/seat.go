// Package seat parses ceremony seat codes into sortable keys.
//
// A seat code has the form "ROW.SEAT.SIDE", for example "1.1.L" or
// "12.4.R". Codes that cannot be parsed map to the [Sentinel] key so that
// such students sort after everyone with a valid seat.
package seat

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// SentinelSide is the side assigned to missing or malformed seat codes.
const SentinelSide = "Z"

// Key is the ordering key derived from a seat code.
type Key struct {
	Row  int
	Seat int
	Side string
}

// Sentinel is the maximal key used for blank or malformed seat codes.
var Sentinel = Key{Row: 999, Seat: 999, Side: SentinelSide}

// Parse converts a raw seat code into a Key.
//
// The code is split on '.'; at least three parts are required. The first
// two parts must be integers and the third is upper-cased as the side.
// Any failure yields [Sentinel]; Parse never returns an error.
func Parse(raw string) Key {
	parts, ok := split(raw)
	if !ok {
		return Sentinel
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Sentinel
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Sentinel
	}
	return Key{Row: row, Seat: n, Side: strings.ToUpper(strings.TrimSpace(parts[2]))}
}

// Side returns the upper-cased third token of a seat code, or
// [SentinelSide] when the code is blank or has fewer than three tokens.
//
// Side does not validate the numeric parts: "x.y.L" has side "L" even
// though its key is the sentinel. This matches how seats are split into
// left and right decks independently of their ordering.
func Side(raw string) string {
	parts, ok := split(raw)
	if !ok {
		return SentinelSide
	}
	side := strings.ToUpper(strings.TrimSpace(parts[2]))
	if side == "" {
		return SentinelSide
	}
	return side
}

func split(raw string) ([]string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	parts := strings.Split(raw, ".")
	if len(parts) < 3 {
		return nil, false
	}
	return parts, true
}

// Compare orders keys by row, then seat, then side lexically.
func Compare(a, b Key) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Seat, b.Seat); c != 0 {
		return c
	}
	return strings.Compare(a.Side, b.Side)
}

// IsSentinel reports whether k is the sentinel key.
func (k Key) IsSentinel() bool { return k == Sentinel }

func (k Key) String() string {
	return fmt.Sprintf("%d.%d.%s", k.Row, k.Seat, k.Side)
}
