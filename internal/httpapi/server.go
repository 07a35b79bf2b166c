// Package httpapi exposes the research engine over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/joelkehle/targetscout/internal/asset"
	"github.com/joelkehle/targetscout/internal/cache"
	"github.com/joelkehle/targetscout/internal/ctgov"
	"github.com/joelkehle/targetscout/internal/discovery"
)

// ReportCacheTTL is how long a research report stays served from cache
// before a fresh discovery run is forced.
const ReportCacheTTL = 6 * time.Hour

type Server struct {
	discoverer *discovery.Discoverer
	verifier   *discovery.Verifier
	trials     discovery.TrialSearcher
	store      *cache.Store
	version    string
}

// NewServer wires the handler mux. The cache store may be nil; every request
// then runs a fresh discovery.
func NewServer(d *discovery.Discoverer, v *discovery.Verifier, trials discovery.TrialSearcher, store *cache.Store, version string) http.Handler {
	s := &Server{
		discoverer: d,
		verifier:   v,
		trials:     trials,
		store:      store,
		version:    version,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/research/", s.handleResearch)
	mux.HandleFunc("/v1/verify", s.handleVerify)
	mux.HandleFunc("/v1/health", s.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": msg})
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	target := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/research/"), "/")
	if target == "" || strings.Contains(target, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	ctx, span := otel.Tracer("targetscout/httpapi").Start(r.Context(), "handleResearch")
	span.SetAttributes(attribute.String("target", target))
	defer span.End()

	refresh := r.URL.Query().Get("refresh") == "true"
	cacheKey := "research:" + asset.FoldName(target)
	if s.store != nil && !refresh {
		if blob, err := s.store.Get(cacheKey); err == nil {
			var cached asset.ResearchReport
			if json.Unmarshal(blob, &cached) == nil {
				writeJSON(w, http.StatusOK, map[string]any{"ok": true, "cached": true, "report": cached})
				return
			}
		}
	}

	report, err := s.discoverer.DiscoverAssets(ctx, target)
	if err != nil {
		log.Printf("targetscout httpapi research_failed target=%s err=%v", target, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if s.store != nil {
		if blob, err := json.Marshal(report); err == nil {
			if err := s.store.Set(cacheKey, blob, ReportCacheTTL); err != nil {
				log.Printf("targetscout httpapi cache_set_failed key=%s err=%v", cacheKey, err)
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "cached": false, "report": report})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	var req struct {
		Drug        string `json:"drug"`
		Description string `json:"description"`
		Target      string `json:"target"`
	}
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, http.StatusBadRequest, "decode body: "+err.Error())
		return
	}
	req.Drug = strings.TrimSpace(req.Drug)
	req.Target = strings.TrimSpace(req.Target)
	if req.Drug == "" || req.Target == "" {
		writeError(w, http.StatusBadRequest, "drug and target are required")
		return
	}

	trials := s.fetchDrugTrials(r.Context(), req.Drug)
	verdict := s.verifier.VerifyDrug(req.Drug, req.Description, req.Target, trials)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"drug":       req.Drug,
		"target":     req.Target,
		"confidence": verdict.Confidence,
		"method":     verdict.Method,
		"details":    verdict.Details,
	})
}

// fetchDrugTrials pulls registry trials mentioning the drug for the
// trial-context layer. A registry failure degrades to no trial evidence.
func (s *Server) fetchDrugTrials(ctx context.Context, drug string) []ctgov.Trial {
	if s.trials == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 25*time.Second)
	defer cancel()
	trials, err := s.trials.SearchByIntervention(ctx, drug, 50)
	if err != nil {
		log.Printf("targetscout httpapi trial_lookup_failed drug=%s err=%v", drug, err)
		return nil
	}
	return trials
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
