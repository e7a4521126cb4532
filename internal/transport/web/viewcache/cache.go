// Package viewcache кеширует отрендеренные GET-страницы до явной инвалидации.
package viewcache

import (
	"bytes"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const DefaultTTL = 10 * time.Minute

type entry struct {
	contentType string
	body        []byte
	expiresAt   time.Time
}

// Cache хранит отрендеренные страницы по полному пути запроса (с query-строкой).
// RevalidatePath сбрасывает все записи страницы вместе с ее вариантами поиска/пагинации.
type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	pages map[string]entry
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:   ttl,
		pages: make(map[string]entry),
	}
}

// RevalidatePath помечает закешированное представление пути как устаревшее:
// следующий запрос отрендерит страницу заново.
func (c *Cache) RevalidatePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.pages {
		if keyPath, _, _ := strings.Cut(key, "?"); keyPath == path {
			delete(c.pages, key)
		}
	}
}

type captureWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b) //nolint:wrapcheck
}

// Middleware отдает закешированный ответ либо запоминает свежесрендеренный.
// Кешируются только успешные GET-ответы.
func (c *Cache) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := ctx.Request.URL.RequestURI()

		c.mu.RLock()
		cached, ok := c.pages[key]
		c.mu.RUnlock()

		if ok && time.Now().Before(cached.expiresAt) {
			ctx.Data(http.StatusOK, cached.contentType, cached.body)
			ctx.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: ctx.Writer, buf: new(bytes.Buffer)}
		ctx.Writer = writer

		ctx.Next()

		if ctx.Writer.Status() != http.StatusOK {
			return
		}

		c.mu.Lock()
		c.pages[key] = entry{
			contentType: writer.Header().Get("Content-Type"),
			body:        writer.buf.Bytes(),
			expiresAt:   time.Now().Add(c.ttl),
		}
		c.mu.Unlock()
	}
}
