package handlers

import (
	"net/http"
	"strings"

	"renthub/internal/services"
	"renthub/pkg/config"
	"renthub/pkg/jwt"
	"renthub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocketHandler 通知推送的WebSocket处理器
type WebSocketHandler struct {
	upgrader   websocket.Upgrader
	hub        *services.NotificationHub
	jwtManager *jwt.JWTManager
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler() *WebSocketHandler {
	// 获取CORS配置
	cfg := config.GetConfig()
	allowedOrigins := cfg.CORS.AllowOrigins

	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				// 如果Origin为空（同源请求），允许
				if origin == "" {
					return true
				}

				for _, allowed := range allowedOrigins {
					if allowed == "*" || matchOrigin(origin, allowed) {
						return true
					}
				}

				// 记录被拒绝的Origin
				logger.GetLogger().Warnf("WebSocket连接被拒绝，非法Origin: %s", origin)
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		hub:        services.GetNotificationHub(),
		jwtManager: jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

// matchOrigin 通配符匹配Origin（支持 *.example.com 形式）
func matchOrigin(origin, pattern string) bool {
	if origin == pattern {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(origin, pattern[1:])
	}
	return false
}

// Notifications 建立通知推送连接
// WebSocket不支持自定义header，token从查询参数获取
func (h *WebSocketHandler) Notifications(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少token参数"})
		return
	}

	claims, err := h.jwtManager.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token无效或已过期"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.GetLogger().Errorf("WebSocket升级失败: %v", err)
		return
	}

	h.hub.Register(claims.UserID, conn)
	logger.GetLogger().Infof("用户 %d 建立通知连接", claims.UserID)

	// 读循环只用于感知断开，收到的消息一律丢弃
	go func() {
		defer func() {
			h.hub.Unregister(claims.UserID, conn)
			conn.Close()
			logger.GetLogger().Infof("用户 %d 断开通知连接", claims.UserID)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
