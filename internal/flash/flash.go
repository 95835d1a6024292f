// Package flash queues transient user-facing messages between requests.
// Messages are keyed by a visitor cookie, not by the login session, so
// denials and logout notices survive the session itself being gone.
package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	redisdb "hangar/internal/redis"
)

const (
	// CookieName identifies a browser across requests for flash delivery.
	CookieName = "hangar_visitor"

	// ContextKey is where the middleware stores the visitor id.
	ContextKey = "visitorId"

	queueTTL = 10 * time.Minute
)

// Message levels mirror the alert classes the templates render.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelDanger  = "danger"
)

type Message struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Store holds queued messages in a Redis list per visitor.
type Store struct {
	rdb redisdb.Cmdable
}

func NewStore(rdb redisdb.Cmdable) *Store {
	return &Store{rdb: rdb}
}

func queueKey(visitorID string) string {
	return fmt.Sprintf("flash:%s", visitorID)
}

// Add appends one message to the visitor's queue. A flash is best-effort:
// failures are logged, never returned, so a broken queue cannot abort the
// request that tried to explain itself.
func (s *Store) Add(ctx context.Context, visitorID, level, message string) {
	if visitorID == "" {
		return
	}
	raw, err := json.Marshal(Message{Level: level, Message: message})
	if err != nil {
		log.Printf("[Flash] Encode failed: %v", err)
		return
	}
	key := queueKey(visitorID)
	if err := s.rdb.RPush(ctx, key, string(raw)).Err(); err != nil {
		log.Printf("[Flash] Queue failed for %s: %v", visitorID, err)
		return
	}
	if err := s.rdb.Expire(ctx, key, queueTTL).Err(); err != nil {
		log.Printf("[Flash] Expire failed for %s: %v", visitorID, err)
	}
}

// Drain returns and clears every queued message for the visitor.
func (s *Store) Drain(ctx context.Context, visitorID string) []Message {
	if visitorID == "" {
		return nil
	}
	key := queueKey(visitorID)
	raw, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		log.Printf("[Flash] Drain failed for %s: %v", visitorID, err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		log.Printf("[Flash] Clear failed for %s: %v", visitorID, err)
	}
	msgs := make([]Message, 0, len(raw))
	for _, r := range raw {
		var m Message
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			log.Printf("[Flash] Skipping malformed message: %v", err)
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs
}

// Middleware ensures every request carries a visitor id, issuing the
// cookie on first contact.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		visitorID, err := c.Cookie(CookieName)
		if err != nil || visitorID == "" {
			visitorID = uuid.NewString()
			c.SetCookie(CookieName, visitorID, int((24 * time.Hour).Seconds()), "/", "", false, true)
		}
		c.Set(ContextKey, visitorID)
		c.Next()
	}
}

// VisitorID reads the id the middleware stored, "" when absent.
func VisitorID(c *gin.Context) string {
	id, _ := c.Get(ContextKey)
	s, _ := id.(string)
	return s
}
