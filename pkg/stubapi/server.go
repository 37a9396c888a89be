// Package stubapi serves the product search contract from memory. It backs
// tests and local demos of the browsing core.
package stubapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/matst80/slask-jewelry/pkg/facet"
	"github.com/matst80/slask-jewelry/pkg/types"
	"go.uber.org/zap"
)

// DelayFunc decides how long a request is held before it is answered.
type DelayFunc func(r *http.Request) time.Duration

type Server struct {
	mu       sync.RWMutex
	products []types.Product
	delay    DelayFunc
	logger   *zap.Logger
}

func New(products []types.Product, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{products: products, logger: logger}
}

// SetProducts swaps the catalog.
func (s *Server) SetProducts(products []types.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// SetDelay holds every matching request for fn(r) before answering, which
// makes responses arrive out of order on purpose.
func (s *Server) SetDelay(fn DelayFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = fn
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog(), cors(), s.hold())

	r.GET("/product/diamonds", s.listHandler(types.CategoryDiamonds, rootShape))
	r.GET("/product/jewelry", s.listHandler(types.CategoryAll, paginationShape))
	r.GET("/product/:category", func(c *gin.Context) {
		category := types.ResolveCategory(c.Param("category"))
		s.listHandler(category, paginationShape)(c)
	})
	r.GET("/product/:category/:id", s.productHandler)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func (s *Server) snapshot() []types.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

func (s *Server) listHandler(category types.Category, shape responseShape) gin.HandlerFunc {
	return func(c *gin.Context) {
		sr, err := types.ParseSearchRequest(c.Request.URL.Query(), category.Registry(), types.DefaultLimit)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid query: " + err.Error()})
			return
		}
		sr.ClampLimit()
		sr.Category = category

		var inCategory []types.Product
		for _, p := range s.snapshot() {
			if p.InCategory(category) {
				inCategory = append(inCategory, p)
			}
		}
		matched := facet.FilterAndSort(inCategory, facet.CriteriaFromFilters(sr.Filters, sr.Sort))
		c.JSON(http.StatusOK, shape(paginate(matched, sr.Page, sr.Limit)))
	}
}

func (s *Server) productHandler(c *gin.Context) {
	category := types.ResolveCategory(c.Param("category"))
	if c.Param("category") == "jewelry" {
		category = types.CategoryAll
	}
	id := c.Param("id")
	for _, p := range s.snapshot() {
		if p.ID != id || !p.InCategory(category) {
			continue
		}
		// diamonds answer with the bare record, jewelry wraps it
		if category == types.CategoryDiamonds {
			c.JSON(http.StatusOK, p)
		} else {
			c.JSON(http.StatusOK, gin.H{"product": p})
		}
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
}

func (s *Server) hold() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.RLock()
		delay := s.delay
		s.mu.RUnlock()
		if delay != nil {
			if d := delay(c.Request); d > 0 {
				t := time.NewTimer(d)
				select {
				case <-t.C:
				case <-c.Request.Context().Done():
					t.Stop()
					c.Abort()
					return
				}
			}
		}
		c.Next()
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http",
			zap.String("rid", c.GetString("rid")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Max-Age", "86400")
			h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "*")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
