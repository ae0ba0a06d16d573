// Package directory maps location tags to the messaging space that receives
// reports for that location.
package directory

import (
	"sort"
	"strings"
)

// Directory is a read-only, case-insensitive location tag lookup.
type Directory struct {
	entries map[string]string
}

// New builds a Directory from tag -> destination id pairs. Tags are compared
// case-insensitively; if two tags differ only in case the last one wins.
func New(entries map[string]string) *Directory {
	d := &Directory{entries: make(map[string]string, len(entries))}
	for tag, dest := range entries {
		d.entries[normalize(tag)] = dest
	}
	return d
}

// Lookup returns the destination id for tag. The boolean is false when the
// location has no configured destination.
func (d *Directory) Lookup(tag string) (string, bool) {
	if d == nil {
		return "", false
	}
	dest, ok := d.entries[normalize(tag)]
	return dest, ok
}

// Len returns the number of configured locations.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Tags returns the normalized tags in sorted order.
func (d *Directory) Tags() []string {
	if d == nil {
		return nil
	}
	tags := make([]string, 0, len(d.entries))
	for tag := range d.entries {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func normalize(tag string) string {
	return strings.ToUpper(strings.TrimSpace(tag))
}
