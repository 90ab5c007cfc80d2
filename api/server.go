package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/reithediver/lol-smurfguard-sub000/events"
	"github.com/reithediver/lol-smurfguard-sub000/riot"
	rc "github.com/reithediver/lol-smurfguard-sub000/riot_common"
)

type Server struct {
	port     string
	client   riot.APIClient
	progress events.ISubscriptionManager[rc.BatchProgress]
	logger   *zap.Logger
	upgrader websocket.Upgrader
	server   *http.Server
}

// New creates the HTTP surface. progress may be nil, in which case /ws/progress is not served.
func New(port string, client riot.APIClient, progress events.ISubscriptionManager[rc.BatchProgress], logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		port:     port,
		client:   client,
		progress: progress,
		logger:   logger.Named("api"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Router builds the route table
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/stats", s.handleStats).Methods("GET")
	router.HandleFunc("/api/v1/accounts/{gameName}/{tagLine}", s.handleAccount).Methods("GET")
	router.HandleFunc("/api/v1/players/{gameName}/{tagLine}/matches", s.handlePlayerMatches).Methods("GET")

	if s.progress != nil {
		router.HandleFunc("/ws/progress", s.handleProgress)
	}

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Router(),
	}

	s.logger.Info("server starting", zap.String("addr", "http://localhost:"+s.port))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", zap.Error(err))
		}
	}()

	return nil
}
