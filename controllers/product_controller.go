package controllers

import (
	"errors"
	"strconv"

	"bakery/entity"
	"bakery/pkg/resp"
	"bakery/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductController struct {
	Repo *repository.ProductRepository
}

func NewProductController(repo *repository.ProductRepository) *ProductController {
	return &ProductController{Repo: repo}
}

// GET /api/products?category=cake
func (ctl *ProductController) List(c *gin.Context) {
	products, err := ctl.Repo.List(c.Query("category"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"products": products})
}

// GET /api/products/:id
func (ctl *ProductController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	p, err := ctl.Repo.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "product not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"product": p})
}

// ===== Admin CRUD =====

type productReq struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category" binding:"required,oneof=cake bakery drink"`
	Stock       int     `json:"stock" binding:"min=0"`
}

func (ctl *ProductController) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	p := entity.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Stock:       req.Stock,
	}
	if err := ctl.Repo.Create(&p); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, gin.H{"product": p})
}

func (ctl *ProductController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if _, err := ctl.Repo.Get(uint(id)); err != nil {
		resp.NotFound(c, "product not found")
		return
	}

	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
		"image":       req.Image,
		"category":    req.Category,
		"stock":       req.Stock,
	}
	if err := ctl.Repo.Update(uint(id), updates); err != nil {
		resp.ServerError(c, err)
		return
	}

	p, _ := ctl.Repo.Get(uint(id))
	resp.OK(c, gin.H{"product": p})
}

func (ctl *ProductController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if _, err := ctl.Repo.Get(uint(id)); err != nil {
		resp.NotFound(c, "product not found")
		return
	}
	if err := ctl.Repo.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, nil)
}
