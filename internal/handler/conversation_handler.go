package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"claimlens/internal/domain"
	"claimlens/internal/service"
)

// ConversationHandler handles bill upload and chat endpoints.
type ConversationHandler struct {
	conversations *service.ConversationService
	maxFileBytes  int64
}

func NewConversationHandler(conversations *service.ConversationService, maxFileSizeMB int64) *ConversationHandler {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 10
	}
	return &ConversationHandler{
		conversations: conversations,
		maxFileBytes:  maxFileSizeMB << 20,
	}
}

// Create handles POST /api/v1/conversations. Multipart form: file, format,
// insurer, plan.
func (h *ConversationHandler) Create(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	if fileHeader.Size > h.maxFileBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	format, err := domain.ParseSourceFormat(c.PostForm("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	insurer := c.PostForm("insurer")
	plan := c.PostForm("plan")
	if insurer == "" || plan == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "insurer and plan are required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}
	defer f.Close()
	fileBytes, err := io.ReadAll(io.LimitReader(f, h.maxFileBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}
	if int64(len(fileBytes)) > h.maxFileBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	conv, err := h.conversations.CreateFromUpload(c.Request.Context(), fileBytes, fileHeader.Filename, format, insurer, plan)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, conv)
}

// Get handles GET /api/v1/conversations/:id.
func (h *ConversationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	conv, err := h.conversations.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, conv)
}

// Delete handles DELETE /api/v1/conversations/:id.
func (h *ConversationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.conversations.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// SendMessage handles POST /api/v1/conversations/:id/messages.
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "content is required")
		return
	}

	reply, err := h.conversations.SendTurn(c.Request.Context(), id, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, reply)
}

// Share handles POST /api/v1/conversations/:id/share.
func (h *ConversationHandler) Share(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "a valid email is required")
		return
	}

	if err := h.conversations.ShareEstimate(c.Request.Context(), id, req.Email); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"shared": true})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
