package handler

import (
	"net/http"

	"studio-proof/internal/services"
	"studio-proof/internal/transport/httpdto"
	"studio-proof/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	service *services.PortfolioService
	logger  *logger.Logger
}

func NewPortfolioHandler(service *services.PortfolioService, l *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{service: service, logger: l}
}

func (h *PortfolioHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("no files uploaded"))
		return
	}

	files := make([]services.FileUpload, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		file, err := readUpload(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid file upload"))
			return
		}
		files = append(files, file)
	}

	items, err := h.service.AddItems(c.Request.Context(), c.PostForm("category"), files)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UploadPortfolioResponse{
		UploadedItems: httpdto.FromPortfolioItems(items),
	}))
}

func (h *PortfolioHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListPortfolioResponse{
		PortfolioItems: httpdto.FromPortfolioItems(items),
	}))
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	report, err := h.service.DeleteItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.DeleteResponse{
		Deleted:       true,
		CleanupErrors: cleanupErrors(report),
	}))
}
