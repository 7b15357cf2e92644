package handler

import (
	"net/http"
	"strconv"

	"studio-proof/internal/repository"
	"studio-proof/internal/services"
	"studio-proof/internal/transport/httpdto"
	"studio-proof/pkg/logger"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service *services.SessionService
	codes   *services.CodeService
	logger  *logger.Logger
}

func NewSessionHandler(service *services.SessionService, codes *services.CodeService, l *logger.Logger) *SessionHandler {
	return &SessionHandler{service: service, codes: codes, logger: l}
}

func (h *SessionHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("no file uploaded"))
		return
	}
	file, err := readUpload(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid file upload"))
		return
	}

	res, err := h.service.AddPhoto(c.Request.Context(), services.AddPhotoInput{
		SessionID:    c.PostForm("sessionId"),
		CustomerName: c.PostForm("customerName"),
		File:         &file,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UploadPhotoResponse{
		PhotoID:   res.Photo.ID,
		PhotoURL:  res.Photo.URL,
		SessionID: res.SessionID,
	}))
}

func (h *SessionHandler) List(c *gin.Context) {
	var req httpdto.ListSessionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}
	page, _ := strconv.Atoi(req.Page)
	limit, _ := strconv.Atoi(req.Limit)

	result, err := h.service.ListSessions(c.Request.Context(), repository.SessionFilter{
		Status: req.Status,
		Search: req.Search,
	}, page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromSessionPage(result)))
}

func (h *SessionHandler) ListPhotos(c *gin.Context) {
	role := services.RoleFromContext(c.Request.Context())
	photos, err := h.service.ListPhotos(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListPhotosResponse{
		Photos: httpdto.FromPhotoSlice(photos),
	}))
}

func (h *SessionHandler) Finish(c *gin.Context) {
	sess, err := h.service.FinishSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.SessionStatusResponse{
		SessionID: sess.ID,
		Status:    string(sess.Status),
	}))
}

func (h *SessionHandler) SubmitSelection(c *gin.Context) {
	var req httpdto.SubmitSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("selectedPhotoIds must be an array of photo ids"))
		return
	}
	sess, err := h.service.SubmitSelection(c.Request.Context(), c.Param("id"), req.SelectedPhotoIDs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.SessionStatusResponse{
		SessionID: sess.ID,
		Status:    string(sess.Status),
	}))
}

func (h *SessionHandler) Delete(c *gin.Context) {
	report, err := h.service.DeleteSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.DeleteResponse{
		Deleted:       true,
		CleanupErrors: cleanupErrors(report),
	}))
}

func (h *SessionHandler) DeletePhoto(c *gin.Context) {
	res, err := h.service.RemovePhoto(c.Request.Context(), c.Param("id"), c.Param("photoId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.DeleteResponse{
		Deleted:        true,
		SessionDeleted: res.SessionDeleted,
		CleanupErrors:  cleanupErrors(res.Cleanup),
	}))
}

func (h *SessionHandler) GenerateCode(c *gin.Context) {
	var req httpdto.GenerateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}
	codeURL, err := h.codes.Generate(c.Request.Context(), req.SessionID, req.TargetPage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.GenerateCodeResponse{CodeURL: codeURL}))
}
