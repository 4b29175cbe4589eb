package controllers

import (
	"io"
	"strings"

	"bakery/pkg/resp"
	"bakery/pkg/slipcheck"
	"bakery/services"
	"bakery/utils"

	"github.com/gin-gonic/gin"
)

type SlipController struct {
	Service *services.SlipService
}

func NewSlipController(s *services.SlipService) *SlipController {
	return &SlipController{Service: s}
}

// POST /api/slip/upload (multipart, field "file")
// pre-filter ของถูก ๆ ทำตรงนี้ (MIME + เพดานขนาด) ก่อนส่งเข้า slipcheck
func (ctl *SlipController) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		resp.BadRequest(c, "file is required")
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		resp.BadRequest(c, slipcheck.ReasonNotImage)
		return
	}
	if fh.Size > slipcheck.MaxFileBytes {
		resp.BadRequest(c, "file too large, max 5MB")
		return
	}

	f, err := fh.Open()
	if err != nil {
		resp.BadRequest(c, slipcheck.ReasonUnreadable)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, slipcheck.MaxFileBytes+1))
	if err != nil || int64(len(data)) > slipcheck.MaxFileBytes {
		resp.BadRequest(c, slipcheck.ReasonUnreadable)
		return
	}

	path, result := ctl.Service.ValidateAndStore(utils.CurrentUserID(c), fh.Filename, data)
	if !result.Valid {
		resp.BadRequest(c, result.Reason)
		return
	}

	resp.OK(c, gin.H{"path": path})
}
