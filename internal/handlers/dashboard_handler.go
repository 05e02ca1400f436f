package handlers

import (
	"renthub/internal/middleware"
	"renthub/internal/models"
	"renthub/internal/services"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 按角色分发仪表盘视图
// admin/landlord/tenant三个互斥视图由同一端点按角色选择
type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// Get 当前用户的仪表盘
func (h *DashboardHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	switch user.Role {
	case models.RoleAdmin:
		dashboard, err := h.service.GetAdminDashboard()
		if err != nil {
			response.ServerError(c, "查询失败")
			return
		}
		response.Success(c, gin.H{"role": user.Role, "admin": dashboard})

	case models.RoleLandlord:
		dashboard, err := h.service.GetLandlordDashboard(user)
		if err != nil {
			response.ServerError(c, "查询失败")
			return
		}
		response.Success(c, gin.H{"role": user.Role, "landlord": dashboard})

	case models.RoleTenant:
		dashboard, err := h.service.GetTenantDashboard(user)
		if err != nil {
			response.ServerError(c, "查询失败")
			return
		}
		response.Success(c, gin.H{"role": user.Role, "tenant": dashboard})

	default:
		response.Forbidden(c, "未知角色")
	}
}
