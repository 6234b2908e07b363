package export

import util "github.com/saulo-duarte/yt-study-api/internal/utils"

type ExportContainer struct {
	Handler *Handler
}

func NewExportContainer(attempts AttemptSource, clock *util.Clock, devMode bool) *ExportContainer {
	handler := NewHandler(NewPDFRenderer(false), attempts, clock, devMode)

	return &ExportContainer{
		Handler: handler,
	}
}
