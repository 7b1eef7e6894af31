// Package runnertest provides a recording fake for runner.Runner.
package runnertest

import (
	"context"
	"sync"

	"github.com/donaldgifford/distasm/internal/runner"
)

// HandlerFunc emulates a command. It may touch the filesystem to simulate the
// tool's side effects and returns the result to report.
type HandlerFunc func(cmd runner.Command) (runner.Result, error)

// Recorder is a fake runner.Runner that records every command it receives.
// Commands without a matching handler succeed with exit code 0.
type Recorder struct {
	mu       sync.Mutex
	commands []runner.Command
	handlers map[string]HandlerFunc
}

// New creates an empty Recorder.
func New() *Recorder {
	return &Recorder{handlers: make(map[string]HandlerFunc)}
}

// Handle registers fn for commands whose Name equals name.
func (r *Recorder) Handle(name string, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[name] = fn
}

// Fail makes every command named name exit with code.
func (r *Recorder) Fail(name string, code int) {
	r.Handle(name, func(runner.Command) (runner.Result, error) {
		return runner.Result{ExitCode: code, Stderr: []byte(name + ": failed\n")}, nil
	})
}

// Run implements runner.Runner.
func (r *Recorder) Run(_ context.Context, cmd runner.Command) (runner.Result, error) {
	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	fn := r.handlers[cmd.Name]
	r.mu.Unlock()

	if fn == nil {
		return runner.Result{}, nil
	}

	return fn(cmd)
}

// Commands returns a copy of the recorded commands in call order.
func (r *Recorder) Commands() []runner.Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]runner.Command, len(r.commands))
	copy(out, r.commands)

	return out
}

// Named returns the recorded commands whose Name equals name.
func (r *Recorder) Named(name string) []runner.Command {
	var out []runner.Command

	for _, c := range r.Commands() {
		if c.Name == name {
			out = append(out, c)
		}
	}

	return out
}
