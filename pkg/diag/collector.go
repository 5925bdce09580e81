package diag

import (
	"fmt"
	"sync"
)

// Severity of a Diagnostic.
type Severity string

const (
	SeverityNote    Severity = "note"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a message about the input document, optionally tied to a
// JSON path within it.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	Context  string   `json:"context,omitempty" yaml:"context,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Context == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s, found in %s", d.Severity, d.Message, d.Context)
}

// Collector records diagnostics and forwards each one to a Logger.
// It is safe for concurrent use.
type Collector struct {
	mu          sync.Mutex
	logger      Logger
	diagnostics []Diagnostic
}

// NewCollector returns a Collector logging through logger. A nil logger
// discards log output.
func NewCollector(logger Logger) *Collector {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Collector{logger: logger}
}

// Emit records d.
func (c *Collector) Emit(d Diagnostic) {
	c.mu.Lock()
	c.diagnostics = append(c.diagnostics, d)
	c.mu.Unlock()

	attrs := []any{"severity", string(d.Severity)}
	if d.Context != "" {
		attrs = append(attrs, "context", d.Context)
	}
	switch d.Severity {
	case SeverityError:
		c.logger.Error(d.Message, attrs...)
	case SeverityWarning:
		c.logger.Warn(d.Message, attrs...)
	default:
		c.logger.Info(d.Message, attrs...)
	}
}

// Note records a note about context.
func (c *Collector) Note(message, context string) {
	c.Emit(Diagnostic{Severity: SeverityNote, Message: message, Context: context})
}

// Warning records a warning about context.
func (c *Collector) Warning(message, context string) {
	c.Emit(Diagnostic{Severity: SeverityWarning, Message: message, Context: context})
}

// Error records an error about context.
func (c *Collector) Error(message, context string) {
	c.Emit(Diagnostic{Severity: SeverityError, Message: message, Context: context})
}

// Diagnostics returns a copy of everything recorded so far, in order.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// Count returns the number of recorded diagnostics with severity s.
func (c *Collector) Count(s Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diagnostics {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// Logger returns the logger diagnostics are forwarded to.
func (c *Collector) Logger() Logger {
	return c.logger
}
