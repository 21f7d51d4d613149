package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Publisher 推送提示到会话的 websocket 订阅者
type Publisher interface {
	Publish(n domain.Notification)
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.Notification) {}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

// StatusFor 错误类型对应的 HTTP 状态码
func StatusFor(err error) int {
	switch {
	case domain.IsInputError(err), errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyCommandSet), errors.Is(err, domain.ErrNoCommand):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError 返回错误并推送错误提示
func respondError(c *gin.Context, logger *logrus.Logger, pub Publisher, sessionID string, err error) {
	status := StatusFor(err)
	n := domain.ErrorNotification(err)
	n.SessionID = sessionID

	if status == http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"session_id": sessionID,
		}).Error("Request failed")
	}

	pub.Publish(n)
	c.JSON(status, gin.H{
		"error":        domain.ErrorKind(err),
		"message":      n.Message,
		"notification": n,
	})
}

// bindSessionID 从 query 或 JSON body 读取 session_id
func bindSessionID(c *gin.Context) (string, error) {
	if id := c.Query("session_id"); id != "" {
		return id, nil
	}
	var req sessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
		}
	}
	if req.SessionID == "" {
		return "", domain.NewInputError("session_id", "", domain.ErrMissingInput)
	}
	return req.SessionID, nil
}
