package adkflow_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adkflow "github.com/transparentlyai/adkflow-sub012"
)

func newRunnerEditor(t *testing.T) *adkflow.Editor {
	t.Helper()
	store := newMemStore()
	seed(t, store, "demo")
	ed, err := adkflow.New("", adkflow.WithStore(store))
	require.NoError(t, err)
	return ed
}

func runScript(t *testing.T, ed *adkflow.Editor, script string) string {
	t.Helper()
	r := adkflow.NewRunner()
	r.Input = strings.NewReader(script)
	var out bytes.Buffer
	r.Output = &out
	require.NoError(t, r.Run(context.Background(), ed))
	return out.String()
}

func TestRunnerRequiresIO(t *testing.T) {
	r := adkflow.NewRunner()
	err := r.Run(context.Background(), newRunnerEditor(t))
	require.Error(t, err)
}

func TestRunnerListAndShow(t *testing.T) {
	out := runScript(t, newRunnerEditor(t), "ls\nshow demo\nquit\n")

	assert.Contains(t, out, "demo")
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "Bye!")
}

func TestRunnerCheck(t *testing.T) {
	out := runScript(t, newRunnerEditor(t), "check demo\n")
	assert.Contains(t, out, "OK")
}

func TestRunnerUnknownCommand(t *testing.T) {
	out := runScript(t, newRunnerEditor(t), "frobnicate\n")
	assert.Contains(t, out, "unknown command: frobnicate")
}

func TestRunnerErrorsAreReportedNotFatal(t *testing.T) {
	out := runScript(t, newRunnerEditor(t), "show missing\nls\nquit\n")

	assert.Contains(t, out, "error:")
	// The loop keeps going after a failed command.
	assert.Contains(t, out, "demo")
}

func TestRunnerExitsOnEOF(t *testing.T) {
	// No trailing quit: the reader just runs dry.
	out := runScript(t, newRunnerEditor(t), "ls\n")
	assert.Contains(t, out, "demo")
}
