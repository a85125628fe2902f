package export

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClipboard(t *testing.T) {
	want := `Total Elements: 3
Elements with Length: 2
Total Length: 5334.0000 mm

Pipe Types : Pipe A (Size: DN50) : 3657.6000 mm
Bracket (Size: ) : NO LENGTH PARAM
Pipe Types : Pipe C (Size: DN80) : 1676.4000 mm
`

	got := FormatClipboard(testResult())
	assert.Equal(t, want, got)
}

func TestCopyToClipboard(t *testing.T) {
	orig := clipboardWriteAll
	defer func() { clipboardWriteAll = orig }()

	var captured string
	clipboardWriteAll = func(text string) error {
		captured = text
		return nil
	}

	require.NoError(t, CopyToClipboard(testResult()))
	assert.Contains(t, captured, "Total Elements: 3")
	assert.Contains(t, captured, "Bracket (Size: ) : NO LENGTH PARAM")
}

func TestCopyToClipboard_Error(t *testing.T) {
	orig := clipboardWriteAll
	defer func() { clipboardWriteAll = orig }()

	clipboardWriteAll = func(string) error {
		return errors.New("no clipboard utilities available")
	}

	err := CopyToClipboard(testResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write clipboard")
}
