package handler

import "github.com/obie7479/Super-work-web-checkin/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Action *ActionHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Action: NewActionHandler(svc.Checkin, svc.Vote),
		Export: NewExportHandler(svc.Export),
	}
}
