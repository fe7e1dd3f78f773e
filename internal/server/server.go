package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rhyrak/examsched/internal/config"
	"github.com/rhyrak/examsched/internal/logging"
	"github.com/rhyrak/examsched/internal/metrics"
	"github.com/rhyrak/examsched/internal/store"
)

const requestIDHeader = "X-Request-ID"

// Store is the persistence the handlers need.
type Store interface {
	Create(ctx context.Context, run *store.Run) error
	Get(ctx context.Context, id string) (*store.Run, error)
	List(ctx context.Context) ([]*store.Run, error)
	Delete(ctx context.Context, id string) error
}

type Server struct {
	cfg     *config.Config
	store   Store
	log     *zap.Logger
	metrics *metrics.Metrics
	engine  *gin.Engine
}

func New(cfg *config.Config, st Store, log *zap.Logger, m *metrics.Metrics) *Server {
	if m == nil {
		m = metrics.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{cfg: cfg, store: st, log: log, metrics: m}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(logging.GinMiddleware(log))
	r.Use(m.GinMiddleware())
	r.Use(cors())
	r.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.GET("/schedule", s.handleListSchedules)
	r.POST("/schedule", s.handlePostSchedule)
	r.GET("/schedule/:id", s.handleGetSchedule)
	r.DELETE("/schedule/:id", s.handleDeleteSchedule)

	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(logging.RequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
