package controllers

import (
	"strconv"

	"bakery/pkg/resp"
	"bakery/repository"
	"bakery/utils"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	Repo *repository.FavoriteRepository
}

func NewFavoriteController(repo *repository.FavoriteRepository) *FavoriteController {
	return &FavoriteController{Repo: repo}
}

// GET /api/favorites
func (ctl *FavoriteController) List(c *gin.Context) {
	favs, err := ctl.Repo.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"favorites": favs})
}

type addFavoriteReq struct {
	ProductID uint `json:"productId" binding:"required"`
}

// POST /api/favorites
func (ctl *FavoriteController) Add(c *gin.Context) {
	var req addFavoriteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Repo.Add(utils.CurrentUserID(c), req.ProductID); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, nil)
}

// DELETE /api/favorites/:productId
func (ctl *FavoriteController) Remove(c *gin.Context) {
	pid, _ := strconv.Atoi(c.Param("productId"))
	if err := ctl.Repo.Remove(utils.CurrentUserID(c), uint(pid)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, nil)
}
