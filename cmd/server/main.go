package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"price-display-api/internal/catalog"
	"price-display-api/internal/metrics"
	"price-display-api/internal/models"
	"price-display-api/internal/render"
	"price-display-api/internal/services"
	"price-display-api/pkg/cache"
)

var (
	rateLimiters = make(map[string]*rate.Limiter)
	rateMutex    = &sync.RWMutex{}
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8085"
	}

	feedURL := os.Getenv("CATALOG_URL")
	if feedURL == "" {
		feedURL = "https://api.kamzilu.com/api/consolas"
	}

	windowHours := 24
	if w := os.Getenv("RECENCY_WINDOW_HOURS"); w != "" {
		if hours, err := strconv.Atoi(w); err == nil && hours > 0 {
			windowHours = hours
		}
	}
	window := time.Duration(windowHours) * time.Hour

	strategy, err := render.ParseStrategy(os.Getenv("HERO_STRATEGY"))
	if err != nil {
		log.Fatal("Invalid HERO_STRATEGY:", err)
	}

	batchSize := 5
	if b := os.Getenv("METRICS_BATCH_SIZE"); b != "" {
		if n, err := strconv.Atoi(b); err == nil && n > 0 {
			batchSize = n
		}
	}

	flushSeconds := 5
	if f := os.Getenv("METRICS_FLUSH_SECONDS"); f != "" {
		if n, err := strconv.Atoi(f); err == nil && n > 0 {
			flushSeconds = n
		}
	}

	redisCache := cache.NewRedisCache()
	fetcher := catalog.NewFetcher(feedURL)
	productService := services.NewProductService(fetcher, redisCache, window, strategy)

	var sink metrics.Sink = &metrics.MemorySink{}
	if redisCache.IsAvailable() {
		sink = metrics.NewRedisSink(redisCache.Client())
	} else {
		log.Println("Redis unavailable, metrics stay in memory")
	}

	collector := metrics.NewCollector(sink, batchSize, time.Duration(flushSeconds)*time.Second)
	collector.Start()

	r := setupRouter(productService, redisCache, collector, window, strategy)

	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.Printf("Starting price display server on :%s (window=%s strategy=%s)", port, window, strategy)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}

	// Drain any queued metrics before exiting
	collector.Stop()
}

func setupRouter(productService *services.ProductService, redisCache *cache.RedisCache, collector *metrics.Collector, window time.Duration, strategy render.HeroStrategy) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Add request ID middleware
	r.Use(func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)
		start := time.Now()
		c.Next()
		log.Printf("[%s] %s %s - %v - %d",
			requestID, c.Request.Method, c.Request.URL.Path,
			time.Since(start), c.Writer.Status())
	})

	r.Use(rateLimitMiddleware())

	// Health check with cache status
	r.GET("/health", func(c *gin.Context) {
		health := gin.H{
			"status":  "healthy",
			"service": "price-display-api",
			"version": "1.0.0",
		}

		if redisCache.IsAvailable() {
			health["cache"] = "redis connected"
		} else {
			health["cache"] = "redis unavailable"
		}

		c.JSON(http.StatusOK, health)
	})

	// Rate limit status endpoint
	r.GET("/rate-limit/status", func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := getRateLimiter(ip)

		c.JSON(http.StatusOK, gin.H{
			"ip":               ip,
			"limit_per_second": limiter.Limit(),
			"burst_capacity":   limiter.Burst(),
			"tokens_available": limiter.Tokens(),
			"next_token_at":    time.Now().Add(time.Second / time.Duration(limiter.Limit())),
		})
	})

	// Cache stats endpoint
	r.GET("/cache/stats", func(c *gin.Context) {
		if !redisCache.IsAvailable() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "cache not available",
			})
			return
		}

		c.JSON(http.StatusOK, redisCache.GetStats())
	})

	// Cache debug endpoint
	r.GET("/cache/debug", func(c *gin.Context) {
		if !redisCache.IsAvailable() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "cache not available",
			})
			return
		}

		keys := redisCache.GetAllKeys()

		keyDetails := make([]gin.H, 0, len(keys))
		for _, key := range keys {
			ttl := redisCache.GetKeyTTL(key)
			keyDetails = append(keyDetails, gin.H{
				"key":         key,
				"ttl_seconds": int(ttl.Seconds()),
				"expires_in":  ttl.String(),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"total_keys":  len(keys),
			"cache_keys":  keyDetails,
			"cache_stats": redisCache.GetStats(),
			"debug_info": gin.H{
				"redis_available": redisCache.IsAvailable(),
				"timestamp":       time.Now().Format(time.RFC3339),
			},
		})
	})

	// Cache flush endpoint (for testing)
	r.DELETE("/cache/flush", func(c *gin.Context) {
		if !redisCache.IsAvailable() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "cache not available",
			})
			return
		}

		if err := redisCache.FlushCache(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "failed to flush cache",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "cache flushed successfully",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Product page: classified + rendered price block for one slug
	r.GET("/products/:slug", func(c *gin.Context) {
		slug := c.Param("slug")

		page, err := productService.ProductPage(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, services.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error:   "product_not_found",
					Code:    http.StatusNotFound,
					Message: fmt.Sprintf("no product with slug %q", slug),
				})
				return
			}

			log.Printf("Product page error: %v", err)
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:   "catalog_unavailable",
				Code:    http.StatusBadGateway,
				Message: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, page)
	})

	// Home cards: lowest fresh price per product
	r.GET("/home/cards", func(c *gin.Context) {
		cards, err := productService.HomeCards(c.Request.Context())
		if err != nil {
			log.Printf("Home cards error: %v", err)
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:   "catalog_unavailable",
				Code:    http.StatusBadGateway,
				Message: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"count": len(cards),
			"cards": cards,
		})
	})

	// Metrics collection endpoint, accepts a batch of events
	r.POST("/metrics/collect", func(c *gin.Context) {
		var events []models.Event
		if err := c.ShouldBindJSON(&events); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_batch",
				Code:    http.StatusBadRequest,
				Message: "expected a JSON array of events",
				Details: err.Error(),
			})
			return
		}

		accepted := 0
		for _, ev := range events {
			if ev.Type == "" {
				continue
			}
			collector.Track(ev)
			accepted++
		}

		c.JSON(http.StatusAccepted, gin.H{
			"accepted": accepted,
			"received": len(events),
		})
	})

	// API info endpoint
	r.GET("/api/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Price Display API",
			"version":     "1.0.0",
			"description": "Classifies store offers by freshness and renders price lists",
			"config": gin.H{
				"recency_window": window.String(),
				"hero_strategy":  string(strategy),
			},
			"endpoints": map[string]string{
				"GET /products/:slug":   "Rendered price block for one product",
				"GET /home/cards":       "Home cards with lowest fresh prices",
				"POST /metrics/collect": "Submit a batch of tracking events",
				"GET /health":           "Health check",
				"GET /cache/stats":      "Cache statistics",
				"GET /api/info":         "API information",
			},
		})
	})

	return r
}

func getRateLimiter(ip string) *rate.Limiter {
	rateMutex.RLock()
	limiter, exists := rateLimiters[ip]
	rateMutex.RUnlock()

	if !exists {
		rateMutex.Lock()
		limiter = rate.NewLimiter(rate.Limit(10), 20) // 10 req/sec, burst 20
		rateLimiters[ip] = limiter
		rateMutex.Unlock()
	}

	return limiter
}

func rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := getRateLimiter(ip)

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limit_exceeded",
				"message":     "Too many requests from your IP",
				"retry_after": "1 second",
				"ip":          ip,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
