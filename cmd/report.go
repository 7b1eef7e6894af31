package cmd

import (
	"context"
	"errors"

	"github.com/donaldgifford/distasm/internal/asmerr"
	"github.com/donaldgifford/distasm/internal/ui"
)

// AbortMessage is printed when an external tool fails.
const AbortMessage = "I am terribly sorry but due to an error this run was aborted."

// Report prints a short diagnostic for err and returns the process exit
// code. A nil error yields 0.
func Report(err error) int {
	return report(newUI(), err)
}

func report(w *ui.Writer, err error) int {
	if err == nil {
		return 0
	}

	switch {
	case errors.Is(err, asmerr.ErrExternalTool):
		w.Failure(AbortMessage)
		w.Error(err.Error())
	case errors.Is(err, context.Canceled):
		w.Failure("Interrupted.")
	default:
		w.Failure("Error: " + err.Error())
	}

	return asmerr.ExitCode(err)
}
