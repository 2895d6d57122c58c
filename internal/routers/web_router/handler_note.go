package web_router

import (
	"github.com/haierkeys/notes-web-client/internal/domain"
	"github.com/haierkeys/notes-web-client/internal/dto"
	"github.com/haierkeys/notes-web-client/internal/notefilter"
	"github.com/haierkeys/notes-web-client/internal/remote"
	pkgapp "github.com/haierkeys/notes-web-client/pkg/app"
	"github.com/haierkeys/notes-web-client/pkg/code"
	"github.com/haierkeys/notes-web-client/pkg/convert"
	"github.com/haierkeys/notes-web-client/pkg/timex"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// NoteList 获取当前用户的笔记列表，支持搜索与状态过滤
// @Router /api/notes [get]
func (h *Handler) NoteList(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.NoteListRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("note list param errs", zap.Any("errs", errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	identity := h.App.Session.Identity()
	if identity == nil || !identity.IsValid() {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	notes, err := h.App.Remote.ListNotes(c.Request.Context(), identity.UID, params.Search, params.Status)
	if err != nil {
		h.logError(c.Request.Context(), "remote.ListNotes", err)
		h.respondRemoteError(c, err, code.ErrorRemoteAPI)
		return
	}

	// 远端已做初筛，本地再跑一遍保证过滤语义一致
	notes = notefilter.Apply(notes, params.Search, domain.NoteStatus(params.Status))

	// 显式携带 page 参数时才分页，默认返回完整列表
	if _, paged := c.GetQuery("page"); paged {
		totalRows := len(notes)
		notes = h.pageSlice(c, notes)
		response.ToResponseList(code.Success, toNoteDTOList(notes), totalRows)
		return
	}

	response.ToResponse(code.Success.WithData(toNoteDTOList(notes)))
}

// pageSlice 对本地过滤后的列表做内存分页
func (h *Handler) pageSlice(c *gin.Context, notes []domain.Note) []domain.Note {
	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: h.App.Config().App.DefaultPageSize,
		MaxPageSize:     h.App.Config().App.MaxPageSize,
	})
	offset := pkgapp.GetPageOffset(page, pageSize)
	if offset >= len(notes) {
		return []domain.Note{}
	}
	end := offset + pageSize
	if end > len(notes) {
		end = len(notes)
	}
	return notes[offset:end]
}

// NoteGet 获取单条笔记
// @Router /api/notes/:id [get]
func (h *Handler) NoteGet(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := convert.StrTo(c.Param("id")).MustInt64()
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("invalid note id"))
		return
	}

	identity := h.App.Session.Identity()
	if identity == nil || !identity.IsValid() {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	note, err := h.App.Remote.GetNote(c.Request.Context(), id, identity.UID)
	if err != nil {
		h.logError(c.Request.Context(), "remote.GetNote", err)
		var remoteErr *remote.Error
		if errors.As(err, &remoteErr) && remoteErr.IsNotFound() {
			response.ToResponse(code.ErrorNoteNotFound)
			return
		}
		h.respondRemoteError(c, err, code.ErrorRemoteAPI)
		return
	}

	response.ToResponse(code.Success.WithData(toNoteDTO(note)))
}

// NoteCreate 创建笔记
// @Router /api/notes [post]
func (h *Handler) NoteCreate(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.NoteCreateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("note create param errs", zap.Any("errs", errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	status := params.Status
	if status == "" {
		status = string(domain.NoteStatusPrivate)
	}

	note, err := h.App.Remote.CreateNote(c.Request.Context(), &remote.NotePayload{
		Title:      params.Title,
		Content:    params.Content,
		Tags:       params.Tags,
		Status:     status,
		SharedWith: params.SharedWith,
	})
	if err != nil {
		h.logError(c.Request.Context(), "remote.CreateNote", err)
		h.respondRemoteError(c, err, code.ErrorNoteSaveFailed)
		return
	}

	response.ToResponse(code.Success.WithData(toNoteDTO(note)))
}

// NoteUpdate 更新笔记，仅提交请求中出现的字段
// @Router /api/notes/:id [put]
func (h *Handler) NoteUpdate(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := convert.StrTo(c.Param("id")).MustInt64()
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("invalid note id"))
		return
	}

	params := &dto.NoteUpdateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("note update param errs", zap.Any("errs", errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	note, err := h.App.Remote.UpdateNote(c.Request.Context(), id, &remote.NotePatch{
		Title:      params.Title,
		Content:    params.Content,
		Tags:       params.Tags,
		Status:     params.Status,
		SharedWith: params.SharedWith,
	})
	if err != nil {
		h.logError(c.Request.Context(), "remote.UpdateNote", err)
		var remoteErr *remote.Error
		if errors.As(err, &remoteErr) && remoteErr.IsNotFound() {
			response.ToResponse(code.ErrorNoteNotFound)
			return
		}
		h.respondRemoteError(c, err, code.ErrorNoteSaveFailed)
		return
	}

	response.ToResponse(code.Success.WithData(toNoteDTO(note)))
}

// NoteDelete 删除笔记
// @Router /api/notes/:id [delete]
func (h *Handler) NoteDelete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := convert.StrTo(c.Param("id")).MustInt64()
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("invalid note id"))
		return
	}

	if err := h.App.Remote.DeleteNote(c.Request.Context(), id); err != nil {
		h.logError(c.Request.Context(), "remote.DeleteNote", err)
		var remoteErr *remote.Error
		if errors.As(err, &remoteErr) && remoteErr.IsNotFound() {
			response.ToResponse(code.ErrorNoteNotFound)
			return
		}
		h.respondRemoteError(c, err, code.ErrorNoteDeleteFailed)
		return
	}

	response.ToResponse(code.Success)
}

func toNoteDTO(note *domain.Note) *dto.NoteDTO {
	d := &dto.NoteDTO{
		ID:          note.ID,
		Title:       note.Title,
		Content:     note.Content,
		Tags:        note.Tags,
		Status:      string(note.Status),
		PublicToken: note.PublicToken,
		CreatedAt:   timex.Time(note.CreatedAt),
		UpdatedAt:   timex.Time(note.UpdatedAt),
	}
	if note.Owner != nil {
		d.Owner = &dto.UserDTO{
			UID:      note.Owner.UID,
			Username: note.Owner.Username,
			Email:    note.Owner.Email,
		}
	}
	d.SharedWith = make([]dto.UserDTO, 0, len(note.SharedWith))
	for _, u := range note.SharedWith {
		d.SharedWith = append(d.SharedWith, dto.UserDTO{
			UID:      u.UID,
			Username: u.Username,
			Email:    u.Email,
		})
	}
	return d
}

func toNoteDTOList(notes []domain.Note) []*dto.NoteDTO {
	list := make([]*dto.NoteDTO, 0, len(notes))
	for i := range notes {
		list = append(list, toNoteDTO(&notes[i]))
	}
	return list
}
