package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/vtex/go-resconfig/cache"
	"github.com/vtex/go-resconfig/prometheus"
	"github.com/vtex/go-resconfig/redis"
	"github.com/vtex/go-resconfig/resindex"
)

const serverLogCategory = "resconfig_server"

var initMetrics sync.Once

// Server exposes the resolver over HTTP.
type Server struct {
	config    *Config
	engine    *gin.Engine
	results   cache.Cache
	remote    redis.Cache
	index     *resindex.Index
	refresher *resindex.Refresher

	// Set when the server built the index, which it then closes.
	ownsIndex bool
	closeOnce sync.Once
}

// New builds a server around the given caches. A nil remote serves results from
// memory only.
func New(config *Config, remote redis.Cache, index *resindex.Index) *Server {
	initMetrics.Do(func() {
		prometheus.InitClient(config.ServiceName, config.Version)
	})

	results := cache.NewMemory()
	if remote != nil {
		results = cache.Hybrid(cache.NewMemory(), remote, config.Cache.LocalTTL)
	}

	s := &Server{
		config:    config,
		results:   results,
		remote:    remote,
		index:     index,
		refresher: resindex.NewRefresher(index, config.Index.RefreshBackoff, config.Index.ScanTimeout),
	}
	s.engine = s.routes()
	return s
}

// NewFromConfig wires Redis, when configured, and loads the configured
// resource sources into a new index.
func NewFromConfig(ctx context.Context, config *Config) (*Server, error) {
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(level)

	var remote redis.Cache
	indexOpts := []resindex.Option{resindex.WithIgnore(config.Index.Ignore...)}
	if config.RedisEnabled() {
		remote = redis.New(config.Redis)
		if err := remote.Ping(); err != nil {
			logger("redis_unreachable", config.Redis.Endpoint).WithError(err).Warn("Starting with an unreachable Redis")
		}
		configs := cache.Hybrid(cache.NewMemory(), remote, config.Cache.LocalTTL)
		indexOpts = append(indexOpts, resindex.WithConfigCache(configs, config.Cache.TTL))
	}

	index := resindex.New(indexOpts...)
	for _, dir := range config.Index.Dirs {
		if _, err := index.ScanDir(ctx, dir); err != nil {
			return nil, err
		}
	}
	for _, url := range config.Index.Remotes {
		if _, err := index.LoadRemote(ctx, url); err != nil {
			return nil, err
		}
	}
	logger("index_loaded", "").WithField("folders", index.Len()).Info("Resource index loaded")

	s := New(config, remote, index)
	s.ownsIndex = true
	return s, nil
}

// Close stops background rescans, and closes the index when the server built
// it. Run closes the server when it returns.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.refresher.Stop()
		if s.ownsIndex {
			s.index.Close()
		}
	})
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(), prometheus.Middleware())

	engine.POST("/resolve", s.resolve)
	engine.GET("/parse/:folder", s.parse)
	engine.GET("/folders/:type/match", s.matchFolder)
	engine.POST("/index/refresh", s.refresh)
	engine.GET("/index/events", s.indexEvents)
	engine.GET("/healthz", s.health)
	engine.GET("/metrics", gin.WrapH(prometheus.Handler()))
	return engine
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully. Configured
// directories are watched for changes while it runs.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()
	if s.config.Index.Watch && len(s.config.Index.Dirs) > 0 {
		if err := s.watch(ctx); err != nil {
			return err
		}
	}

	srv := &http.Server{Addr: s.config.Listen, Handler: s.engine}

	errs := make(chan error, 1)
	go func() {
		logger("listening", "").WithField("addr", s.config.Listen).Info("Resolver listening")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) watch(ctx context.Context) error {
	watcher, err := resindex.NewWatcher(s.refresher, s.config.Index.RefreshBackoff)
	if err != nil {
		return err
	}
	for _, dir := range s.config.Index.Dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	go watcher.Run(ctx)
	logger("watching", "").WithField("dirs", len(s.config.Index.Dirs)).Info("Watching resource directories")
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(g *gin.Context) {
		start := time.Now()
		g.Next()
		logrus.WithFields(logrus.Fields{
			"category": serverLogCategory,
			"code":     "request",
			"method":   g.Request.Method,
			"path":     g.Request.URL.Path,
			"status":   g.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("Handled request")
	}
}

func logger(code, key string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"category": serverLogCategory,
		"code":     code,
		"key":      key,
	})
}
