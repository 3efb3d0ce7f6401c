// Package tool mediates calls from responders to external data and service
// providers. Provider failures surface as typed ToolError values; raw
// transport errors never cross this boundary.
package tool

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Tool names registered with the invoker.
const (
	NameLookupSchedule   = "lookup_schedule"
	NameRecommendCourses = "recommend_courses"
	NameSummarizeText    = "summarize_text"
)

// ErrorKind classifies a tool failure.
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindProvider    ErrorKind = "provider"
	KindUnknownTool ErrorKind = "unknown_tool"
)

// ToolError is the typed failure returned across the invoker boundary.
type ToolError struct {
	Tool      string
	Kind      ErrorKind
	Reason    string
	Transient bool
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s failed (%s): %s", e.Tool, e.Kind, e.Reason)
}

// Func is one registered tool implementation.
type Func func(ctx context.Context, args map[string]string) (string, error)

// Invoker dispatches named tool calls with a bounded per-call timeout.
// It never retries on behalf of a responder.
type Invoker struct {
	timeout time.Duration
	tools   map[string]Func
}

// NewInvoker creates an invoker with the supplied per-call timeout.
func NewInvoker(timeout time.Duration) *Invoker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Invoker{
		timeout: timeout,
		tools:   make(map[string]Func),
	}
}

// Register binds a tool implementation to a name.
func (inv *Invoker) Register(name string, fn Func) {
	inv.tools[name] = fn
}

// Call runs a named tool under the configured timeout. A timeout is reported
// as a transient ToolError, never left pending.
func (inv *Invoker) Call(ctx context.Context, name string, args map[string]string) (string, *ToolError) {
	fn, ok := inv.tools[name]
	if !ok {
		return "", &ToolError{Tool: name, Kind: KindUnknownTool, Reason: "no such tool"}
	}

	callCtx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()

	type outcome struct {
		result string
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := fn(callCtx, args)
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-callCtx.Done():
		log.Printf("[tool] %s timed out after %s", name, inv.timeout)
		return "", &ToolError{Tool: name, Kind: KindTimeout, Reason: callCtx.Err().Error(), Transient: true}
	case out := <-done:
		if out.err != nil {
			log.Printf("[tool] %s failed: %v", name, out.err)
			return "", &ToolError{
				Tool:      name,
				Kind:      KindProvider,
				Reason:    out.err.Error(),
				Transient: isTransient(out.err),
			}
		}
		return out.result, nil
	}
}

func isTransient(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
