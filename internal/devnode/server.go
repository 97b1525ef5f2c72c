package devnode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"progman/internal/domain"
	"progman/internal/protocol/program"
	"progman/internal/protocol/transaction"
	"progman/internal/vm"
)

// Route names reported by Requests.
const (
	RouteProgram     = "program"
	RouteBroadcast   = "broadcast"
	RouteTransaction = "transaction"
	RouteHeight      = "height"
)

// Server holds deployed programs and accepted transactions in memory.
type Server struct {
	network string
	log     *zap.Logger

	mu           sync.RWMutex
	programs     map[domain.ProgramID]string
	transactions map[domain.TransactionID]domain.Transaction
	accepted     []domain.TransactionID
	requests     map[string]int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's access logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a server answering for network.
func New(network string, opts ...Option) (*Server, error) {
	s := &Server{
		network:      network,
		log:          zap.NewNop(),
		programs:     make(map[domain.ProgramID]string),
		transactions: make(map[domain.TransactionID]domain.Transaction),
		requests:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	credits, err := vm.Credits()
	if err != nil {
		return nil, err
	}
	s.programs[credits.ID] = credits.Source
	return s, nil
}

// AddProgram makes source available as if it had been deployed. Its imports
// must already be deployed.
func (s *Server) AddProgram(source string) (domain.ProgramID, error) {
	p, err := program.Parse(source)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.acceptDeployment(&domain.Deployment{Program: p.ID, Source: source, Imports: p.Imports}); err != nil {
		return "", err
	}
	return p.ID, nil
}

// Requests returns how many requests a route has served.
func (s *Server) Requests(route string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests[route]
}

// Transactions returns accepted transactions in acceptance order.
func (s *Server) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, 0, len(s.accepted))
	for _, id := range s.accepted {
		out = append(out, s.transactions[id])
	}
	return out
}

// Handler returns the HTTP API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{network}/program/{id}", s.route(RouteProgram, s.handleProgram))
	mux.HandleFunc("POST /{network}/transaction/broadcast", s.route(RouteBroadcast, s.handleBroadcast))
	mux.HandleFunc("GET /{network}/transaction/{id}", s.route(RouteTransaction, s.handleTransaction))
	mux.HandleFunc("GET /{network}/latest/height", s.route(RouteHeight, s.handleHeight))
	return s.accessLog(mux)
}

func (s *Server) route(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[name]++
		s.mu.Unlock()
		if r.PathValue("network") != s.network {
			http.Error(w, "unknown network", http.StatusNotFound)
			return
		}
		h(w, r)
	}
}

func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	id := domain.ProgramID(r.PathValue("id"))
	s.mu.RLock()
	src, ok := s.programs[id]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, "program not found", http.StatusNotFound)
		return
	}
	writeJSON(w, src)
}

func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var tx domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := transaction.Verify(tx); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[tx.ID]; ok {
		http.Error(w, "transaction already accepted", http.StatusConflict)
		return
	}
	switch tx.Type {
	case domain.TransactionDeploy:
		if status, err := s.acceptDeployment(tx.Deployment); err != nil {
			http.Error(w, err.Error(), status)
			return
		}
	case domain.TransactionExecute:
		if _, ok := s.programs[tx.Execution.Program]; !ok {
			http.Error(w, "program not deployed", http.StatusBadRequest)
			return
		}
	}
	s.transactions[tx.ID] = tx
	s.accepted = append(s.accepted, tx.ID)
	writeJSON(w, tx.ID)
}

// acceptDeployment records d's program. Callers hold s.mu.
func (s *Server) acceptDeployment(d *domain.Deployment) (int, error) {
	if _, ok := s.programs[d.Program]; ok {
		return http.StatusConflict, fmt.Errorf("program %s already deployed", d.Program)
	}
	p, err := program.Parse(d.Source)
	if err != nil {
		return http.StatusBadRequest, err
	}
	if p.ID != d.Program {
		return http.StatusBadRequest, fmt.Errorf("source declares %s, deployment names %s", p.ID, d.Program)
	}
	for _, imp := range p.Imports {
		if _, ok := s.programs[imp]; !ok {
			return http.StatusBadRequest, fmt.Errorf("import %s not deployed", imp)
		}
	}
	s.programs[p.ID] = d.Source
	return http.StatusOK, nil
}

func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	tx, ok := s.transactions[domain.TransactionID(r.PathValue("id"))]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}
	writeJSON(w, tx)
}

func (s *Server) handleHeight(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	h := len(s.accepted)
	s.mu.RUnlock()
	writeJSON(w, h)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)))
	})
}
