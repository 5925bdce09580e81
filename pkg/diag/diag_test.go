package diag

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecordsInOrder(t *testing.T) {
	c := NewCollector(nil)
	c.Warning("schema unsupported: notObjectish", "#/components/schemas/Bad")
	c.Note("skipping operation without id", "#/paths/~1pets/get")

	got := c.Diagnostics()
	require.Len(t, got, 2)
	assert.Equal(t, SeverityWarning, got[0].Severity)
	assert.Equal(t, "warning: schema unsupported: notObjectish, found in #/components/schemas/Bad", got[0].String())
	assert.Equal(t, SeverityNote, got[1].Severity)
	assert.Equal(t, 1, c.Count(SeverityWarning))
	assert.Equal(t, 0, c.Count(SeverityError))
}

func TestCollectorDiagnosticsIsACopy(t *testing.T) {
	c := NewCollector(NopLogger{})
	c.Error("boom", "")
	got := c.Diagnostics()
	got[0].Message = "changed"
	assert.Equal(t, "boom", c.Diagnostics()[0].Message)
	assert.Equal(t, "error: boom", c.Diagnostics()[0].String())
}

func TestCollectorForwardsToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	c := NewCollector(logger.With("run", "test"))
	c.Warning("dropped property", "#/components/schemas/Pet/properties/x")

	out := buf.String()
	assert.True(t, strings.Contains(out, "level=WARN"), out)
	assert.True(t, strings.Contains(out, "dropped property"), out)
	assert.True(t, strings.Contains(out, "run=test"), out)
	assert.True(t, strings.Contains(out, "context=#/components/schemas/Pet/properties/x"), out)
}

func TestNewSlogAdapterNilUsesDefault(t *testing.T) {
	assert.NotNil(t, NewSlogAdapter(nil))
}
