package controllers

import (
	"strconv"

	"bakery/pkg/resp"
	"bakery/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Auth   *services.AuthService
	Report *services.ReportService
}

func NewAdminController(auth *services.AuthService, report *services.ReportService) *AdminController {
	return &AdminController{Auth: auth, Report: report}
}

// GET /api/admin/users
func (ctl *AdminController) Users(c *gin.Context) {
	users, err := ctl.Auth.ListUsers()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"users": users})
}

type updateRoleReq struct {
	Role string `json:"role" binding:"required,oneof=customer admin"`
}

// PATCH /api/admin/users/:id/role
func (ctl *AdminController) UpdateRole(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var req updateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Auth.UpdateRole(uint(id), req.Role); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, nil)
}

// GET /api/reports/sales?days=30
func (ctl *AdminController) SalesReport(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	summary, err := ctl.Report.Summary(days)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"report": summary})
}
