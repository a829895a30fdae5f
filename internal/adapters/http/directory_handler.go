package http

import (
	"net/http"

	"github.com/ogurasousui/hr-org-service/internal/core/directory"
	"github.com/sirupsen/logrus"
)

// DirectoryHandler は管理者名簿 API のハンドラです。認証は不要です。
type DirectoryHandler struct {
	uc     directory.UseCase
	logger *logrus.Logger
}

// NewDirectoryHandler は DirectoryHandler を生成します。
func NewDirectoryHandler(uc directory.UseCase, logger *logrus.Logger) *DirectoryHandler {
	return &DirectoryHandler{uc: uc, logger: logger}
}

// ListManagers は GET /v1/managers を処理します。
func (h *DirectoryHandler) ListManagers(w http.ResponseWriter, r *http.Request) {
	views, err := h.uc.ListManagers(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := listManagersResponse{Managers: make([]managerViewResponse, 0, len(views))}
	for _, view := range views {
		resp.Managers = append(resp.Managers, toManagerViewResponse(view))
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}
