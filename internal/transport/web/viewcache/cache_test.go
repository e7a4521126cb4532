package viewcache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type CacheTestSuite struct {
	suite.Suite
	cache  *Cache
	router *gin.Engine
	// renders считает реальные рендеры: попадание в кеш счетчик не двигает.
	renders int
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (s *CacheTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.cache = New(time.Minute)
	s.renders = 0

	s.router = gin.New()
	s.router.GET("/items", s.cache.Middleware(), func(c *gin.Context) {
		s.renders++
		c.String(http.StatusOK, fmt.Sprintf("render %d for %s", s.renders, c.Request.URL.RawQuery))
	})
	s.router.GET("/broken", s.cache.Middleware(), func(c *gin.Context) {
		s.renders++
		c.String(http.StatusInternalServerError, "boom")
	})
}

func (s *CacheTestSuite) get(target string) string {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)
	return rec.Body.String()
}

func (s *CacheTestSuite) TestServesCachedCopy() {
	first := s.get("/items?page=1")
	second := s.get("/items?page=1")

	s.Equal(first, second)
	s.Equal(1, s.renders)

	// Другая query-строка — отдельная запись кеша.
	s.get("/items?page=2")
	s.Equal(2, s.renders)
}

func (s *CacheTestSuite) TestRevalidatePath() {
	s.get("/items?page=1")
	s.get("/items?page=2")
	s.Equal(2, s.renders)

	// Инвалидация сбрасывает все варианты пути разом.
	s.cache.RevalidatePath("/items")

	s.get("/items?page=1")
	s.get("/items?page=2")
	s.Equal(4, s.renders)
}

func (s *CacheTestSuite) TestRevalidateForeignPathKeepsEntries() {
	s.get("/items?page=1")
	s.cache.RevalidatePath("/other")

	s.get("/items?page=1")
	s.Equal(1, s.renders)
}

func (s *CacheTestSuite) TestSkipsFailedResponses() {
	req := httptest.NewRequest(http.MethodGet, "/broken", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/broken", nil))
	s.Equal(2, s.renders)
}

func (s *CacheTestSuite) TestExpiredEntryRerenders() {
	shortLived := New(time.Millisecond)
	renders := 0

	router := gin.New()
	router.GET("/items", shortLived.Middleware(), func(c *gin.Context) {
		renders++
		c.String(http.StatusOK, "ok")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items", nil))
	time.Sleep(5 * time.Millisecond)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items", nil))

	s.Equal(2, renders)
}
