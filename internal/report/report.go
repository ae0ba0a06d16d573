// Package report assembles the incident report message.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RevCBH/roomreport/internal/device"
	"github.com/RevCBH/roomreport/internal/identity"
	"github.com/RevCBH/roomreport/internal/sequencer"
	"github.com/oklog/ulid/v2"
)

// ErrIncomplete is returned when a session is missing one of its answers.
var ErrIncomplete = errors.New("session is incomplete")

// Report is a fully populated incident report.
type Report struct {
	// ID correlates log lines for one report; it is not part of the text.
	ID string

	Category      string
	Description   string
	ReportedBy    string
	Software      string
	SerialNumber  string
	IPAddress     string
	DeviceAddress string
	Campus        string
	Room          string
}

// Assemble builds a Report from a completed session, the device identity
// captured at startup and the device's current contact address.
func Assemble(sess sequencer.Session, info device.Info, address string) (Report, error) {
	if !sess.Complete() {
		return Report{}, fmt.Errorf("assemble pass %d: %w", sess.Pass, ErrIncomplete)
	}

	id, err := identity.Resolve(address)
	if err != nil {
		return Report{}, fmt.Errorf("assemble pass %d: %w", sess.Pass, err)
	}

	return Report{
		ID:            ulid.Make().String(),
		Category:      sess.Category,
		Description:   sess.Description,
		ReportedBy:    sess.ReporterName,
		Software:      info.SoftwareVersion,
		SerialNumber:  info.SerialNumber,
		IPAddress:     info.IPAddress,
		DeviceAddress: address,
		Campus:        id.LocationTag,
		Room:          id.RoomLabel,
	}, nil
}

// Text renders the message posted to the destination space.
func (r Report) Text() string {
	var b strings.Builder
	b.WriteString("Incident Report:\n")
	line := func(label, value string) {
		fmt.Fprintf(&b, "    - %s: %s\n", label, value)
	}
	line("Category", r.Category)
	line("Description", r.Description)
	line("Reported By", r.ReportedBy)
	line("Software", r.Software)
	line("Serial number", r.SerialNumber)
	line("IP Address", r.IPAddress)
	line("Device URI", r.DeviceAddress)
	line("Campus", r.Campus)
	line("Campus Room Name", r.Room)
	return strings.TrimSuffix(b.String(), "\n")
}
