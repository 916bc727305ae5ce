package service

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/roG0d/distributed-challenges/src/node"
	"github.com/sirupsen/logrus"
)

// Service exposes a read-only HTTP API over a running node, for inspection
// while the node talks its real protocol on stdin/stdout.
type Service struct {
	sync.Mutex

	bindAddress string
	node        *node.Node
	logger      *logrus.Entry
}

// NewService instantiates a Service and registers its handlers.
func NewService(bindAddress string, n *node.Node, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		node:        n,
		logger:      logger,
	}

	return &service
}

// mux builds the API routes on a private ServeMux, so the service never
// collides with other handlers registered in the same process.
func (s *Service) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/stats", s.makeHandler(s.GetStats))
	mux.HandleFunc("/peers", s.makeHandler(s.GetPeers))
	mux.HandleFunc("/messages", s.makeHandler(s.GetMessages))
	mux.HandleFunc("/neighbors", s.makeHandler(s.GetNeighbors))
	return mux
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Serve calls ListenAndServe. This is a blocking call.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving API")

	err := http.ListenAndServe(s.bindAddress, s.mux())
	if err != nil {
		s.logger.Error(err)
	}
}

// GetStats returns the node's runtime counters.
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := s.node.GetStats()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(stats)
}

// GetPeers returns the cluster roster, empty before init.
func (s *Service) GetPeers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)

	peerSet := s.node.Peers()
	if peerSet == nil {
		encoder.Encode([]string{})
		return
	}

	encoder.Encode(peerSet.Peers)
}

// GetMessages returns a snapshot of the values this node has seen.
func (s *Service) GetMessages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(s.node.KnownValues())
}

// GetNeighbors returns the node's current gossip adjacency list.
func (s *Service) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(s.node.Neighbors())
}
