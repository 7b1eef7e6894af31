package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/distasm/internal/asmerr"
	"github.com/donaldgifford/distasm/internal/ui"
)

func TestReport(t *testing.T) {
	t.Parallel()

	tool := &asmerr.ToolError{Command: []string{"tar", "-xzf", "sdk.tar.gz"}, ExitCode: 2, Stderr: "tar: bad"}

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{name: "success", wantCode: 0},
		{
			name:     "tool failure",
			err:      fmt.Errorf("assembling win32: %w", tool),
			wantCode: 2,
			wantOut:  AbortMessage + "\n",
			wantErr:  "tar: bad",
		},
		{
			name:     "configuration",
			err:      asmerr.Configf("unknown file type 'rar'"),
			wantCode: asmerr.ExitConfiguration,
			wantOut:  "Error: unknown file type 'rar'\n",
		},
		{
			name:     "missing source",
			err:      asmerr.SourceMissing("/cfg/source"),
			wantCode: asmerr.ExitGeneric,
			wantOut:  "Error: ",
		},
		{
			name:     "interrupted",
			err:      fmt.Errorf("extracting: %w", context.Canceled),
			wantCode: asmerr.ExitGeneric,
			wantOut:  "Interrupted.\n",
		},
		{
			name:     "other",
			err:      errors.New("disk full"),
			wantCode: asmerr.ExitGeneric,
			wantOut:  "Error: disk full\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer

			code := report(ui.NewWriterWithOutputs(&out, &errOut, true), tt.err)

			assert.Equal(t, tt.wantCode, code)

			if tt.wantOut == "" {
				assert.Empty(t, out.String())
			} else {
				assert.Contains(t, out.String(), tt.wantOut)
			}

			if tt.wantErr != "" {
				assert.Contains(t, errOut.String(), tt.wantErr)
			}
		})
	}
}
