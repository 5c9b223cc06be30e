package statusline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdatefOverwritesInPlace(t *testing.T) {
	var out bytes.Buffer
	p := New(&out)

	p.Updatef("a long status message")
	p.Updatef("short")

	got := out.String()
	assert.NotContains(t, got, "\n", "status updates never scroll")
	assert.Contains(t, got, "\r"+strings.Repeat(" ", len("a long status message"))+"\r",
		"the previous message must be blanked out fully")
	assert.True(t, strings.HasSuffix(got, "short"))
}

func TestPrintlnfAppendsHistory(t *testing.T) {
	var out bytes.Buffer
	p := New(&out)

	p.Updatef("Current track (0:10): Song A")
	p.Printlnf("Track ended (0:10): Song A")
	p.Updatef("Waiting")

	got := out.String()
	assert.Contains(t, got, "Track ended (0:10): Song A\n", "history lines are permanent")
	assert.True(t, strings.HasSuffix(got, "\rWaiting"),
		"after a history line the status restarts from an empty line")
}
