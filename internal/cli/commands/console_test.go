package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
)

// consoleTestSetup builds a session and a command whose output lands in
// the returned buffers.
func consoleTestSetup(t *testing.T) (*consoleSession, *cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cmd := testCommand(t)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	sess := &consoleSession{
		cmdCtx: testCommandContext(t),
		unit:   core.UnitFeet,
	}
	return sess, cmd, out, errOut
}

func TestConsoleHandle_LoadAndCalc(t *testing.T) {
	sess, cmd, out, errOut := consoleTestSetup(t)
	path := writeTestModel(t)

	quit := sess.handle(cmd, "load "+path)
	require.False(t, quit)
	assert.Contains(t, out.String(), "Loaded 3 elements")
	assert.Empty(t, errOut.String())

	// The model declares millimeters; loading adopts it.
	assert.Equal(t, core.UnitMillimeters, sess.unit)

	out.Reset()
	quit = sess.handle(cmd, "calc")
	require.False(t, quit)
	require.NotNil(t, sess.lastResult)
	assert.Equal(t, 3, sess.lastResult.Summary.TotalElements)
	assert.Contains(t, out.String(), "Pipe Types : Pipe A")
	assert.Contains(t, out.String(), "3657.6000 mm")
	assert.Contains(t, out.String(), core.NoLengthSentinel)
	assert.Contains(t, out.String(), "Total Length: 5334.0000 mm")
}

func TestConsoleHandle_UnitCommand(t *testing.T) {
	sess, cmd, out, errOut := consoleTestSetup(t)

	quit := sess.handle(cmd, "unit")
	require.False(t, quit)
	assert.Contains(t, out.String(), "Current unit: ft")

	out.Reset()
	quit = sess.handle(cmd, "unit mm")
	require.False(t, quit)
	assert.Contains(t, out.String(), "Unit set to mm")
	assert.Equal(t, core.UnitMillimeters, sess.unit)

	quit = sess.handle(cmd, "unit parsec")
	require.False(t, quit)
	assert.Contains(t, errOut.String(), "Unknown unit: parsec")
	assert.Equal(t, core.UnitMillimeters, sess.unit)
}

func TestConsoleHandle_RequiresModel(t *testing.T) {
	sess, cmd, _, errOut := consoleTestSetup(t)

	sess.handle(cmd, "calc")
	assert.Contains(t, errOut.String(), "no model loaded")

	errOut.Reset()
	sess.handle(cmd, "elements")
	assert.Contains(t, errOut.String(), "no model loaded")

	errOut.Reset()
	sess.handle(cmd, "summary")
	assert.Contains(t, errOut.String(), "No calculation yet")
}

func TestConsoleHandle_SummaryAndExport(t *testing.T) {
	sess, cmd, out, errOut := consoleTestSetup(t)
	path := writeTestModel(t)

	sess.handle(cmd, "load "+path)
	sess.handle(cmd, "calc")
	require.NotNil(t, sess.lastResult)

	out.Reset()
	sess.handle(cmd, "summary")
	assert.Contains(t, out.String(), "Total Elements: 3")
	assert.Contains(t, out.String(), "Elements with Length: 2")

	out.Reset()
	file := filepath.Join(t.TempDir(), "out.xlsx")
	sess.handle(cmd, "export "+file)
	assert.Contains(t, out.String(), "Exported 3 elements")
	_, err := os.Stat(file)
	require.NoError(t, err)
	assert.Empty(t, errOut.String())
}

func TestConsoleHandle_ElementsFilter(t *testing.T) {
	sess, cmd, out, _ := consoleTestSetup(t)
	path := writeTestModel(t)

	sess.handle(cmd, "load "+path)

	out.Reset()
	sess.handle(cmd, "elements pipe")
	assert.Contains(t, out.String(), "Pipe Types : Pipe A")
	assert.Contains(t, out.String(), "Pipe Types : Pipe C")
	assert.NotContains(t, out.String(), "Bracket")
	assert.Contains(t, out.String(), "(2 elements)")
}

func TestConsoleHandle_Help(t *testing.T) {
	sess, cmd, out, _ := consoleTestSetup(t)

	sess.handle(cmd, "help")
	assert.Contains(t, out.String(), "load <path>")
	assert.Contains(t, out.String(), "quit / exit")
}

func TestConsoleHandle_QuitAndUnknown(t *testing.T) {
	sess, cmd, _, errOut := consoleTestSetup(t)

	assert.True(t, sess.handle(cmd, "quit"))
	assert.True(t, sess.handle(cmd, "exit"))
	assert.False(t, sess.handle(cmd, "frobnicate"))
	assert.Contains(t, errOut.String(), "Unknown command: frobnicate")
}
