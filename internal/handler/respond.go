package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"studio-proof/internal/services"
	"studio-proof/internal/transport/httpdto"
	"studio-proof/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError writes the error envelope with the status the error maps to.
// Server side failures are logged with the request id.
func respondError(c *gin.Context, l *logger.Logger, err error) {
	status := httpdto.StatusFromError(err)
	if status >= 500 && l != nil {
		l.WithContext(c.Request.Context()).Errorf("%s %s failed: %s", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, httpdto.NewErrorResponse(httpdto.MessageFromError(err)))
}

func readUpload(fh *multipart.FileHeader) (services.FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return services.FileUpload{}, fmt.Errorf("failed to open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.FileUpload{}, fmt.Errorf("failed to read upload %q: %w", fh.Filename, err)
	}
	return services.FileUpload{Name: fh.Filename, Data: data}, nil
}

func cleanupErrors(report services.CleanupReport) []string {
	if report.OK() {
		return nil
	}
	out := make([]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		out = append(out, f.Key)
	}
	return out
}
