package services

import (
	"renthub/pkg/logger"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Notification 推送给客户端的事件
type Notification struct {
	Event     string                 `json:"event"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// NotificationHub 按用户维护WebSocket连接并推送租约事件
// 连接断开即移除，不做离线补发
type NotificationHub struct {
	mu    sync.RWMutex
	conns map[uint][]*websocket.Conn // userID -> 连接列表（同一用户可多端在线）
}

// 单例实现
var (
	hubInstance *NotificationHub
	hubOnce     sync.Once
)

// GetNotificationHub 获取全局通知中心实例
func GetNotificationHub() *NotificationHub {
	hubOnce.Do(func() {
		hubInstance = &NotificationHub{
			conns: make(map[uint][]*websocket.Conn),
		}
	})
	return hubInstance
}

// Register 注册用户连接
func (h *NotificationHub) Register(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[userID] = append(h.conns[userID], conn)
}

// Unregister 移除用户连接
func (h *NotificationHub) Unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[userID]
	for i, c := range conns {
		if c == conn {
			h.conns[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// Notify 向指定用户的所有在线连接推送事件
// 写失败只记录日志并关闭该连接，不影响调用方
func (h *NotificationHub) Notify(userID uint, event string, data map[string]interface{}) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, len(h.conns[userID]))
	copy(conns, h.conns[userID])
	h.mu.RUnlock()

	if len(conns) == 0 {
		return
	}

	message := Notification{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}

	for _, conn := range conns {
		if err := conn.WriteJSON(message); err != nil {
			logger.GetLogger().Warnf("推送通知失败 (user=%d): %v", userID, err)
			conn.Close()
			h.Unregister(userID, conn)
		}
	}
}
