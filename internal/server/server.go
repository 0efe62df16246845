// Package server is the thin HTTP collaborator over the datastore and
// the evidence engine: request validation and JSON shaping only, no
// domain logic of its own.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pharmakit/interaction-checker/internal/explain"
	"github.com/pharmakit/interaction-checker/internal/interactions"
	"github.com/pharmakit/interaction-checker/internal/store"
)

const searchLimit = 50

// MaxCheckDrugs bounds the drug list per check request. Pairs grow
// quadratically and /check/explain runs one adapter call per pair, so
// the cap is what keeps a single request's work finite.
const MaxCheckDrugs = 10

// Server wires the immutable datastore and the explanation adapter into
// the route tree.
type Server struct {
	store     *store.Store
	explainer explain.Explainer
	log       *slog.Logger
}

func New(st *store.Store, ex explain.Explainer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if ex == nil {
		ex = explain.Disabled{}
	}
	return &Server{store: st, explainer: ex, log: logger}
}

// Router builds the gin handler. CORS origins follow the configured
// allowlist; "*" opens it up entirely.
func (s *Server) Router(corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.GET("/", s.root)
	r.GET("/health", s.health)
	r.GET("/drugs", s.searchDrugs)
	r.GET("/drug/:name", s.getDrug)
	r.POST("/check", s.check)
	r.POST("/check/explain", s.checkExplain)
	return r
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Drug Interaction Checker API is running"})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "total_drugs": s.store.Len()})
}

func (s *Server) searchDrugs(c *gin.Context) {
	matches := s.store.Search(c.Query("search"), searchLimit)
	if matches == nil {
		matches = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (s *Server) getDrug(c *gin.Context) {
	name := c.Param("name")
	info := s.store.Get(name)
	if !info.Found {
		c.JSON(http.StatusNotFound, gin.H{"detail": info.Name + " not found in the dataset"})
		return
	}
	if c.Query("glossary") != "" {
		c.JSON(http.StatusOK, gin.H{
			"name":             info.Name,
			"enzymes":          info.Enzymes,
			"transporters":     info.Transporters,
			"attributes":       info.Attributes,
			"attribute_labels": explain.TranslateAttributes(info.Attributes),
			"found":            true,
		})
		return
	}
	c.JSON(http.StatusOK, info)
}

type checkRequest struct {
	Drugs []string `json:"drugs"`
	Style string   `json:"style,omitempty"`
}

// normalizedDrugs validates the body and lowercases the names; a second
// return of false means the response has already been written.
func (s *Server) normalizedDrugs(c *gin.Context) ([]string, string, bool) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body: " + err.Error()})
		return nil, "", false
	}
	if len(req.Drugs) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Need at least 2 drugs to check interactions"})
		return nil, "", false
	}
	if len(req.Drugs) > MaxCheckDrugs {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Too many drugs: at most %d per request", MaxCheckDrugs),
		})
		return nil, "", false
	}
	drugs := make([]string, len(req.Drugs))
	for i, d := range req.Drugs {
		drugs[i] = store.NormalizeName(d)
	}
	return drugs, strings.TrimSpace(req.Style), true
}

func (s *Server) check(c *gin.Context) {
	drugs, _, ok := s.normalizedDrugs(c)
	if !ok {
		return
	}

	results := make([]interactions.Interaction, 0, len(drugs)*(len(drugs)-1)/2)
	for i := 0; i < len(drugs); i++ {
		for j := i + 1; j < len(drugs); j++ {
			results = append(results, interactions.FindInteraction(s.store, drugs[i], drugs[j]))
		}
	}
	c.JSON(http.StatusOK, gin.H{"interactions": results})
}

type explainedInteraction struct {
	interactions.Interaction
	Explanation string `json:"llm_explanation"`
}

func (s *Server) checkExplain(c *gin.Context) {
	drugs, style, ok := s.normalizedDrugs(c)
	if !ok {
		return
	}

	start := time.Now()
	results := make([]explainedInteraction, 0, len(drugs)*(len(drugs)-1)/2)
	for i := 0; i < len(drugs); i++ {
		for j := i + 1; j < len(drugs); j++ {
			ixn := interactions.FindInteraction(s.store, drugs[i], drugs[j])
			text := s.explainer.Explain(c.Request.Context(), explain.Request{
				Interaction: ixn,
				Drug1:       s.store.Get(drugs[i]),
				Drug2:       s.store.Get(drugs[j]),
				Style:       explain.Style(style),
			})
			results = append(results, explainedInteraction{Interaction: ixn, Explanation: text})
		}
	}

	s.log.Info("check.explain.ok",
		"pairs", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	c.JSON(http.StatusOK, gin.H{"interactions": results})
}
