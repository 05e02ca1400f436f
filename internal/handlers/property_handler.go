package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"renthub/internal/middleware"
	"renthub/internal/services"
	"renthub/pkg/config"
	"renthub/pkg/pagination"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PropertyHandler struct {
	service *services.PropertyService
}

func NewPropertyHandler(service *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		service: service,
	}
}

type CreatePropertyRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Description string `json:"description"`
}

type UpdatePropertyRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

type AddRatingRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// GetAll 房产列表（分页，mine=true只看自己名下）
func (h *PropertyHandler) GetAll(c *gin.Context) {
	pageParams := pagination.ParsePageParams(c)
	keyword := c.Query("keyword")

	var landlordID uint
	if c.Query("mine") == "true" {
		landlordID = middleware.CurrentUser(c).ID
	}

	properties, total, err := h.service.GetWithFiltersAndPage(landlordID, keyword, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, properties, pageInfo)
}

// Search 房产搜索（关键字+租金区间+排序，不分页）
func (h *PropertyHandler) Search(c *gin.Context) {
	params := services.SearchParams{
		Keyword: c.Query("keyword"),
		SortBy:  c.DefaultQuery("sort", services.SortByName),
	}

	if minStr := c.Query("min_rent"); minStr != "" {
		min, err := decimal.NewFromString(minStr)
		if err != nil {
			response.BadRequest(c, "min_rent格式错误")
			return
		}
		params.MinRent = &min
	}
	if maxStr := c.Query("max_rent"); maxStr != "" {
		max, err := decimal.NewFromString(maxStr)
		if err != nil {
			response.BadRequest(c, "max_rent格式错误")
			return
		}
		params.MaxRent = &max
	}

	properties, err := h.service.GetAllForSearch()
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, services.SearchProperties(properties, params))
}

// GetByID 获取房产详情
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	property, err := h.service.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "房产不存在")
			return
		}
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, property)
}

// Create 创建房产（房东/管理员）
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user := middleware.CurrentUser(c)
	property, err := h.service.Create(user.ID, req.Name, req.Address, req.Description)
	if err != nil {
		response.ServerError(c, "创建失败")
		return
	}

	response.Success(c, property)
}

// Update 更新房产（仅所有者或管理员）
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user := middleware.CurrentUser(c)
	property, err := h.service.Update(uint(id), user, req.Name, req.Address, req.Description)
	if err != nil {
		h.translateError(c, err, "更新失败")
		return
	}

	response.Success(c, property)
}

// Delete 删除房产（仅所有者或管理员）
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.service.Delete(uint(id), user); err != nil {
		h.translateError(c, err, "删除失败")
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// UploadImage 上传房产图片（multipart，存本地目录并登记记录）
func (h *PropertyHandler) UploadImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "缺少image文件")
		return
	}

	cfg := config.GetConfig()
	if file.Size > cfg.Upload.MaxSize*1024*1024 {
		response.BadRequest(c, fmt.Sprintf("文件大小不能超过%dMB", cfg.Upload.MaxSize))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.BadRequest(c, "只支持jpg/png/webp格式")
		return
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		response.ServerError(c, "创建存储目录失败")
		return
	}

	fileName := uuid.New().String() + ext
	dst := filepath.Join(cfg.Upload.Dir, fileName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		response.ServerError(c, "保存文件失败")
		return
	}

	url := cfg.Upload.BaseURL + "/" + fileName
	user := middleware.CurrentUser(c)
	image, err := h.service.AddImage(uint(id), user, url, fileName)
	if err != nil {
		// 记录失败则清掉已落盘的文件
		os.Remove(dst)
		h.translateError(c, err, "上传失败")
		return
	}

	response.Success(c, image)
}

// AddRating 租客评分
func (h *PropertyHandler) AddRating(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req AddRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user := middleware.CurrentUser(c)
	rating, err := h.service.AddRating(uint(id), user.ID, req.Rating, req.Comment)
	if err != nil {
		h.translateError(c, err, "评分失败")
		return
	}

	response.Success(c, rating)
}

// translateError 统一转换服务层错误
func (h *PropertyHandler) translateError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c, "房产不存在")
	case errors.Is(err, services.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrPropertyHasTenancies):
		response.BadRequest(c, err.Error())
	default:
		response.ServerError(c, fallback)
	}
}
