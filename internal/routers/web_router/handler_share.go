package web_router

import (
	"github.com/haierkeys/notes-web-client/internal/domain"
	"github.com/haierkeys/notes-web-client/internal/dto"
	"github.com/haierkeys/notes-web-client/internal/notefilter"
	pkgapp "github.com/haierkeys/notes-web-client/pkg/app"
	"github.com/haierkeys/notes-web-client/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SharedNoteList 获取共享给当前用户的笔记列表
// @Router /api/shared-notes [get]
func (h *Handler) SharedNoteList(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.NoteListRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("shared note list param errs", zap.Any("errs", errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	identity := h.App.Session.Identity()
	if identity == nil || !identity.IsValid() {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	notes, err := h.App.Remote.ListSharedNotes(c.Request.Context(), identity.UID)
	if err != nil {
		h.logError(c.Request.Context(), "remote.ListSharedNotes", err)
		h.respondRemoteError(c, err, code.ErrorRemoteAPI)
		return
	}

	// 共享列表的搜索与状态过滤只在本地执行
	notes = notefilter.Apply(notes, params.Search, domain.NoteStatus(params.Status))

	if _, paged := c.GetQuery("page"); paged {
		totalRows := len(notes)
		notes = h.pageSlice(c, notes)
		response.ToResponseList(code.Success, toNoteDTOList(notes), totalRows)
		return
	}

	response.ToResponse(code.Success.WithData(toNoteDTOList(notes)))
}
