// Package identity derives a device's location tag and room label from its
// registered contact address.
package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnresolvable is returned when an address does not have the
// <location>-<room>@<domain> shape.
var ErrUnresolvable = errors.New("address does not match <location>-<room>@<domain>")

// addressPattern is greedy on the location group, so embedded hyphens stay in
// the location and only the last hyphen-delimited token becomes the room.
var addressPattern = regexp.MustCompile(`^(.+)-(.+)@.+`)

// Identity is where a device lives, as encoded in its contact address.
type Identity struct {
	LocationTag string // lowercase site code, e.g. "memhq"
	RoomLabel   string // room token as written in the address
}

// Resolve parses address into an Identity.
func Resolve(address string) (Identity, error) {
	m := addressPattern.FindStringSubmatch(address)
	if m == nil {
		return Identity{}, fmt.Errorf("resolve %q: %w", address, ErrUnresolvable)
	}
	return Identity{
		LocationTag: strings.ToLower(m[1]),
		RoomLabel:   m[2],
	}, nil
}
