package cli

import (
	"io"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

var (
	EnvFileFromArgs  = envFileFromArgs
	ErrInvalidOutput = errInvalidOutput
	FormatAmount     = formatAmount
	FormatPercent    = formatPercent
	FormatPayback    = formatPayback
	GetIndexConfig   = getIndexConfig
)

func ParseOutput(dest string) (bucket, object, path string, err error) {
	t, err := parseOutput(dest)
	return t.bucket, t.object, t.path, err
}

func RenderComparison(w io.Writer, c *model.Comparison) {
	renderComparison(w, c)
}
