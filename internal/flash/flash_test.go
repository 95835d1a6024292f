package flash

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"hangar/test/mocks"
)

func TestAddAndDrain(t *testing.T) {
	rdb := mocks.NewMockRedisClient()
	store := NewStore(rdb)
	ctx := context.Background()

	store.Add(ctx, "visitor-1", LevelDanger, "You must log in to access this page.")
	store.Add(ctx, "visitor-1", LevelInfo, "second")

	msgs := store.Drain(ctx, "visitor-1")
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Level != LevelDanger || msgs[0].Message != "You must log in to access this page." {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1].Message != "second" {
		t.Errorf("messages out of order: %+v", msgs)
	}

	// Drained means gone.
	if again := store.Drain(ctx, "visitor-1"); len(again) != 0 {
		t.Errorf("expected empty queue after drain, got %v", again)
	}
}

func TestQueuesAreIsolatedPerVisitor(t *testing.T) {
	rdb := mocks.NewMockRedisClient()
	store := NewStore(rdb)
	ctx := context.Background()

	store.Add(ctx, "a", LevelSuccess, "for a")
	store.Add(ctx, "b", LevelSuccess, "for b")

	got := store.Drain(ctx, "a")
	if len(got) != 1 || got[0].Message != "for a" {
		t.Fatalf("visitor a got %v", got)
	}
	if left := store.Drain(ctx, "b"); len(left) != 1 || left[0].Message != "for b" {
		t.Fatalf("visitor b got %v", left)
	}
}

func TestAddFailureIsSwallowed(t *testing.T) {
	rdb := mocks.NewMockRedisClient()
	rdb.RPushError = errors.New("redis down")
	store := NewStore(rdb)

	// Must not panic or surface the error.
	store.Add(context.Background(), "v", LevelDanger, "lost")

	rdb.RPushError = nil
	if msgs := store.Drain(context.Background(), "v"); len(msgs) != 0 {
		t.Errorf("failed Add should queue nothing, got %v", msgs)
	}
}

func TestMiddlewareIssuesVisitorCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())

	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = VisitorID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	if seen == "" {
		t.Fatal("middleware did not set a visitor id")
	}
	cookie := w.Result().Cookies()
	found := false
	for _, ck := range cookie {
		if ck.Name == CookieName && ck.Value == seen {
			found = true
		}
	}
	if !found {
		t.Errorf("visitor cookie not issued, cookies: %v", cookie)
	}
}

func TestMiddlewareKeepsExistingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())

	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = VisitorID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "stable-id"})
	r.ServeHTTP(w, req)

	if seen != "stable-id" {
		t.Errorf("expected existing visitor id to be reused, got %q", seen)
	}
}
