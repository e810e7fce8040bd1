package automaton

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	a := defaultAutomata.MakeChar('a').Union(defaultAutomata.MakeChar('b'))
	a.Minimize()

	assert.Contains(t, buf.String(), "msg=determinize")
	assert.Contains(t, buf.String(), "msg=minimize")

	SetLogger(nil)
	buf.Reset()
	_ = a.Determinize()
	assert.Empty(t, buf.String())
}
