package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/newmobile/internal/adapters/scraper"
	"github.com/phenrril/newmobile/internal/domain"
	"github.com/phenrril/newmobile/internal/usecase"
)

const maxUploadBytes = 10 << 20

type Server struct {
	mux      *http.ServeMux
	sessions *usecase.SessionUC
	catalog  domain.CatalogGateway
	images   *scraper.ImageFinder
	seo      *SEOSuggester
}

func New(sessions *usecase.SessionUC, catalog domain.CatalogGateway, images *scraper.ImageFinder, seo *SEOSuggester) http.Handler {
	s := &Server{
		mux:      http.NewServeMux(),
		sessions: sessions,
		catalog:  catalog,
		images:   images,
		seo:      seo,
	}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/sessions", s.handleSessions)
	s.mux.HandleFunc("/api/sessions/", s.handleSessionByID)
	s.mux.HandleFunc("/api/products", s.handleProducts)
	s.mux.HandleFunc("/api/seo/suggest", s.handleSEOSuggest)
	s.mux.HandleFunc("/api/images/suggest", s.handleImageSuggest)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})
}

// handleSessions opens a new edit session, fetching the product or resuming
// an autosaved draft.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ProductID string `json:"productId"`
		Resume    bool   `json:"resume"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	var (
		sess *usecase.Session
		err  error
	)
	if req.Resume {
		sess, err = s.sessions.Resume(r.Context(), req.ProductID)
	} else {
		sess, err = s.sessions.Open(r.Context(), req.ProductID)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	view, err := s.sessions.View(sess.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// handleSessionByID routes /api/sessions/{id} and its sub-resources.
func (s *Server) handleSessionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	switch {
	case sub == "" && r.Method == http.MethodGet:
		view, err := s.sessions.View(id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, 200, view)
	case sub == "" && r.Method == http.MethodDelete:
		s.sessions.Cancel(r.Context(), id)
		writeJSON(w, 200, map[string]string{"status": "cancelled"})
	case sub == "ops" && r.Method == http.MethodPost:
		s.handleOps(w, r, id)
	case sub == "images" && r.Method == http.MethodPost:
		s.handleAttachImage(w, r, id)
	case sub == "submit" && r.Method == http.MethodPost:
		s.handleSubmit(w, r, id)
	case sub == "pricing.xlsx" && r.Method == http.MethodGet:
		s.handlePricingExport(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleOps(w http.ResponseWriter, r *http.Request, id string) {
	var op usecase.Op
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	view, err := s.sessions.Apply(r.Context(), id, op)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, 200, view)
}

func (s *Server) handleAttachImage(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "multipart", http.StatusBadRequest)
		return
	}
	colorID := r.FormValue("colorId")
	file, hdr, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file", http.StatusBadRequest)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		http.Error(w, "read", http.StatusBadRequest)
		return
	}
	img := &domain.ImageFile{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	}
	view, err := s.sessions.AttachImage(r.Context(), id, colorID, img, r.FormValue("preview"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, 200, view)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.sessions.Submit(r.Context(), id); err != nil {
		if ve, ok := domain.AsValidation(err); ok {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"status": "invalid", "errors": ve})
			return
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]string{"status": "submitted"})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	items, total, err := s.catalog.ListProducts(r.Context(), page, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"items": items, "total": total})
}

func (s *Server) handleSEOSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if s.seo == nil {
		http.Error(w, "seo suggestions disabled", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}
	sug, err := s.seo.Suggest(r.Context(), req.Name, req.Description)
	if err != nil {
		log.Error().Err(err).Msg("seo suggestion failed")
		http.Error(w, "suggestion failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, 200, sug)
}

func (s *Server) handleImageSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if s.images == nil {
		http.Error(w, "image suggestions disabled", http.StatusServiceUnavailable)
		return
	}
	q := r.URL.Query()
	product := q.Get("product")
	if strings.TrimSpace(product) == "" {
		http.Error(w, "product required", http.StatusBadRequest)
		return
	}
	max, _ := strconv.Atoi(q.Get("max"))
	urls, err := s.images.Find(r.Context(), product, q.Get("color"), max)
	if err != nil {
		log.Error().Err(err).Str("product", product).Msg("image search failed")
		http.Error(w, "search failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, 200, map[string]any{"images": urls})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrSessionClosed):
		http.Error(w, "session closed", http.StatusGone)
	default:
		log.Error().Err(err).Msg("request failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
