// Package getter wraps hashicorp/go-getter for downloading base archives.
package getter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	getter "github.com/hashicorp/go-getter/v2"
)

// Getter wraps go-getter to fetch files over HTTP, S3, GCS and local paths.
type Getter struct {
	client *getter.Client
	logger *slog.Logger
}

// New creates a Getter with default configuration.
func New(logger *slog.Logger) *Getter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Getter{
		client: &getter.Client{
			DisableSymlinks: true,
		},
		logger: logger,
	}
}

// FetchOpts configures a fetch operation.
type FetchOpts struct {
	// Pwd is the working directory for relative path detection.
	Pwd string
}

// FetchFile downloads a single file from src to dest. The file is stored as
// is: decompression is turned off and local sources are copied, not linked.
func (g *Getter) FetchFile(ctx context.Context, src, dest string, opts FetchOpts) error {
	fullSrc := appendQuery(src, "archive", "false")
	g.logger.Debug("fetching file", "src", fullSrc, "dest", dest)

	req := &getter.Request{
		Src:             fullSrc,
		Dst:             dest,
		Pwd:             opts.Pwd,
		GetMode:         getter.ModeFile,
		Copy:            true,
		DisableSymlinks: true,
	}

	_, err := g.client.Get(ctx, req)
	if err != nil {
		return fmt.Errorf("fetching file %s: %w", src, err)
	}

	return nil
}

// appendQuery adds a query parameter to a source URL.
func appendQuery(src, key, value string) string {
	sep := "?"
	if strings.Contains(src, "?") {
		sep = "&"
	}

	return src + sep + key + "=" + value
}
