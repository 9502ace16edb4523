// Package server implements the optional HTTP surface: a single-gene
// match endpoint over the same Result Assembler pipeline the CLI drives,
// fronted by an LRU cache of recent request/response pairs. Grounded on
// gorilla/mux routing the way nishad-srake/internal/api/server.go sets up
// its router, and golang-lru/v2 the way
// yi-john-huang-acmg-amp-classifier-mcp/internal/service/transcript_resolver.go
// caches resolved lookups.
package server

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/gorilla/mux"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/report"
	"github.com/msilver727/pharmcat/internal/result"
	"github.com/msilver727/pharmcat/internal/sample"
)

// matchRequest is the JSON body POST /v1/match expects: the gene to match
// and the sample's raw genotype records covering it.
type matchRequest struct {
	Gene    string                `json:"gene"`
	Records []sample.SampleRecord `json:"records"`
}

// Server wires the catalog, match options, and response cache into HTTP
// handlers.
type Server struct {
	genes  map[string]*catalog.GeneDefinition
	opts   result.Options
	cache  *lru.Cache[uint64, []byte]
	log    *zap.Logger
	router *mux.Router
}

// New builds a Server with an LRU response cache of the given size.
func New(genes []*catalog.GeneDefinition, opts result.Options, cacheSize int, log *zap.Logger) (*Server, error) {
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, err := lru.New[uint64, []byte](cacheSize)
	if err != nil {
		return nil, err
	}

	byGene := make(map[string]*catalog.GeneDefinition, len(genes))
	for _, g := range genes {
		byGene[g.Gene] = g
	}

	s := &Server{genes: byGene, opts: opts, cache: cache, log: log, router: mux.NewRouter()}
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/match", s.handleMatch).Methods(http.MethodPost)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log := s.log.With(zap.String("requestID", requestID))

	body, err := canonicalize(r)
	if err != nil {
		log.Warn("malformed request body", zap.Error(err))
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	var req matchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Warn("malformed request body", zap.Error(err))
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	gene, ok := s.genes[req.Gene]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown gene %q", req.Gene), http.StatusNotFound)
		return
	}

	key := cacheKey(body)
	if cached, ok := s.cache.Get(key); ok {
		log.Debug("cache hit", zap.String("gene", req.Gene))
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	reader := sample.NewReader()
	alleles, err := reader.Read(gene.Gene, gene.Loci, req.Records)
	if err != nil {
		log.Warn("variant reader error", zap.String("gene", gene.Gene), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := result.Assemble(gene, alleles, s.opts)
	if err != nil {
		log.Error("match failed", zap.String("gene", gene.Gene), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out, err := report.MarshalOne(res)
	if err != nil {
		log.Error("response serialization failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.cache.Add(key, out)
	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

// canonicalize re-encodes the request body through encoding/json so
// whitespace and key-order differences between equivalent requests hash
// identically.
func canonicalize(r *http.Request) ([]byte, error) {
	var v any
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func cacheKey(body []byte) uint64 {
	h := fnv.New64a()
	h.Write(body)
	return h.Sum64()
}
