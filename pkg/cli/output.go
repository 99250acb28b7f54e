package cli

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/secmon-lab/riskquant/pkg/utils/safe"
)

var errInvalidOutput = goerr.New("invalid output destination")

const gcsScheme = "gs://"

// outputTarget is either a local file path or a Cloud Storage object
type outputTarget struct {
	path   string
	bucket string
	object string
}

func (t outputTarget) isGCS() bool {
	return t.bucket != ""
}

func parseOutput(dest string) (outputTarget, error) {
	if dest == "" {
		return outputTarget{}, goerr.Wrap(errInvalidOutput, "output destination is empty")
	}
	if !strings.HasPrefix(dest, gcsScheme) {
		return outputTarget{path: dest}, nil
	}

	bucket, object, ok := strings.Cut(strings.TrimPrefix(dest, gcsScheme), "/")
	if !ok || bucket == "" || object == "" || strings.HasSuffix(object, "/") {
		return outputTarget{}, goerr.Wrap(errInvalidOutput, "gs:// destination must be gs://<bucket>/<object>", goerr.V("output", dest))
	}
	return outputTarget{bucket: bucket, object: object}, nil
}

// writeJSON writes v as indented JSON to a local file or a gs:// object
func writeJSON(ctx context.Context, dest string, v any) error {
	target, err := parseOutput(dest)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal output")
	}
	data = append(data, '\n')

	if !target.isGCS() {
		if err := os.WriteFile(target.path, data, 0600); err != nil {
			return goerr.Wrap(err, "failed to write output file", goerr.V("path", target.path))
		}
		logging.From(ctx).Info("Output written", "path", target.path)
		return nil
	}

	return uploadGCS(ctx, target, data)
}

func uploadGCS(ctx context.Context, target outputTarget, data []byte) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to create storage client")
	}
	defer safe.Close(ctx, client, "storage client")

	writer := client.Bucket(target.bucket).Object(target.object).NewWriter(ctx)
	writer.ContentType = "application/json"
	writer.CacheControl = "no-cache"

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return goerr.Wrap(err, "failed to write object",
			goerr.V("bucket", target.bucket),
			goerr.V("object", target.object),
		)
	}
	if err := writer.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", target.bucket),
			goerr.V("object", target.object),
		)
	}

	logging.From(ctx).Info("Output uploaded", "bucket", target.bucket, "object", target.object)
	return nil
}
