package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/engine"
)

func TestWatchTriggers(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "write to watched file",
			event: fsnotify.Event{Name: "/models/model.json", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "create from a save-by-replace",
			event: fsnotify.Event{Name: "/models/model.json", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "write combined with chmod",
			event: fsnotify.Event{Name: "/models/model.json", Op: fsnotify.Write | fsnotify.Chmod},
			want:  true,
		},
		{
			name:  "chmod alone",
			event: fsnotify.Event{Name: "/models/model.json", Op: fsnotify.Chmod},
			want:  false,
		},
		{
			name:  "remove",
			event: fsnotify.Event{Name: "/models/model.json", Op: fsnotify.Remove},
			want:  false,
		},
		{
			name:  "sibling file in the watched directory",
			event: fsnotify.Event{Name: "/models/other.json", Op: fsnotify.Write},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, watchTriggers(tt.event, "model.json"))
		})
	}
}

func TestReportWatchError(t *testing.T) {
	cmd := testCommand(t)
	errOut := &bytes.Buffer{}
	cmd.SetErr(errOut)

	reportWatchError(cmd, engine.ErrNoSelection)
	assert.Contains(t, errOut.String(), "No elements selected. Waiting for changes...")

	errOut.Reset()
	reportWatchError(cmd, errors.New("source vanished"))
	assert.Contains(t, errOut.String(), "Error: source vanished")
}
