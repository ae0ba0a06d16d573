package report

import (
	"errors"
	"testing"

	"github.com/RevCBH/roomreport/internal/device"
	"github.com/RevCBH/roomreport/internal/identity"
	"github.com/RevCBH/roomreport/internal/sequencer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testInfo = device.Info{
	SerialNumber:    "FOC2447N5FW",
	SoftwareVersion: "RoomOS 11.14.1.5",
	IPAddress:       "10.10.20.31",
}

func completeSession() sequencer.Session {
	return sequencer.Session{
		Pass:         1,
		Category:     "Facility issue",
		Description:  "Printer broken",
		ReporterName: "Jane",
		Filled:       3,
	}
}

func TestAssemble(t *testing.T) {
	r, err := Assemble(completeSession(), testInfo, "memhq-room1@hww.room.ciscospark.com")
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "memhq", r.Campus)
	assert.Equal(t, "room1", r.Room)

	want := "Incident Report:\n" +
		"    - Category: Facility issue\n" +
		"    - Description: Printer broken\n" +
		"    - Reported By: Jane\n" +
		"    - Software: RoomOS 11.14.1.5\n" +
		"    - Serial number: FOC2447N5FW\n" +
		"    - IP Address: 10.10.20.31\n" +
		"    - Device URI: memhq-room1@hww.room.ciscospark.com\n" +
		"    - Campus: memhq\n" +
		"    - Campus Room Name: room1"
	assert.Equal(t, want, r.Text())
}

func TestAssemble_EmptyDescription(t *testing.T) {
	sess := completeSession()
	sess.Description = ""

	r, err := Assemble(sess, testInfo, "memhq-room1@hww.room.ciscospark.com")
	require.NoError(t, err)
	assert.Contains(t, r.Text(), "    - Description: \n")
}

func TestAssemble_Incomplete(t *testing.T) {
	sess := completeSession()
	sess.Filled = 2

	_, err := Assemble(sess, testInfo, "memhq-room1@hww.room.ciscospark.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncomplete))
}

func TestAssemble_Unresolvable(t *testing.T) {
	r, err := Assemble(completeSession(), testInfo, "lobby@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, identity.ErrUnresolvable))
	assert.Equal(t, Report{}, r)
}

func TestAssemble_UniqueIDs(t *testing.T) {
	a, err := Assemble(completeSession(), testInfo, "memhq-room1@x.com")
	require.NoError(t, err)
	b, err := Assemble(completeSession(), testInfo, "memhq-room1@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Text(), b.Text())
}
