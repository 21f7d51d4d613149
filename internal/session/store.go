// Package session keeps per-client selection state and composed outputs.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store 内存会话存储，按最后访问时间过期
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *logrus.Logger
	now      func() time.Time
}

// NewStore 创建会话存储；ttl <= 0 表示永不过期
func NewStore(ttl time.Duration, logger *logrus.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Create 新建会话
func (s *Store) Create() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := newSession(uuid.New().String(), s.now())
	s.sessions[sess.ID] = sess
	return sess.view()
}

// Get 返回会话快照并刷新访问时间
func (s *Store) Get(id string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return View{}, domain.NewInputError("session", id, domain.ErrNotFound)
	}
	sess.LastSeen = s.now()
	return sess.view(), nil
}

// Update 在锁内修改会话；fn 返回错误时不刷新访问时间
func (s *Store) Update(id string, fn func(*Session) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return View{}, domain.NewInputError("session", id, domain.ErrNotFound)
	}
	if err := fn(sess); err != nil {
		return sess.view(), err
	}
	sess.LastSeen = s.now()
	return sess.view(), nil
}

// Delete 删除会话
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len 当前会话数
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// SetTTL 配置热更新时调整过期时间
func (s *Store) SetTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttl = ttl
}

// Sweep 清理过期会话，返回清理数量
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor 定期清理过期会话，ctx 取消后退出；onSweep 可为 nil，收到剩余会话数
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration, onSweep func(remaining int)) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := s.Sweep()
			remaining := s.Len()
			if n > 0 {
				s.logger.WithFields(logrus.Fields{
					"removed":   n,
					"remaining": remaining,
				}).Debug("Expired sessions removed")
			}
			if onSweep != nil {
				onSweep(remaining)
			}
		}
	}
}
