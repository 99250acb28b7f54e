package safe

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/utils/errutil"
)

// Close closes c and hands a failure to errutil.Handle, tagged with what
// was being closed. A nil closer is ignored.
func Close(ctx context.Context, c io.Closer, what string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "close failed", goerr.V("resource", what)), "failed to close "+what)
	}
}

// Write writes a response body whose status line is already sent, so a
// failure can only be reported. Short writes count as failures.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	n, err := w.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "write failed", goerr.V("written", n), goerr.V("size", len(data))), "failed to write response")
	}
}
