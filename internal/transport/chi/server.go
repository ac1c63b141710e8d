package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/textvec/internal/domain"
	"github.com/kailas-cloud/textvec/internal/logger"
	"github.com/kailas-cloud/textvec/internal/version"
	annotateuc "github.com/kailas-cloud/textvec/internal/usecase/annotate"
	healthuc "github.com/kailas-cloud/textvec/internal/usecase/health"
	vectorizeuc "github.com/kailas-cloud/textvec/internal/usecase/vectorize"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 10 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers of the textvec API.
type Server struct {
	vectorize     *vectorizeuc.Service
	annotate      *annotateuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	vectorize *vectorizeuc.Service,
	annotate *annotateuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		vectorize:    vectorize,
		annotate:     annotate,
		health:       health,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	}
	return s
}

// WithMaxBodyBytes overrides the request body limit.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Register mounts all API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Post("/tf-idf", s.TFIDF)
	r.Post("/bag-of-words", s.BagOfWords)
	r.Post("/lsa", s.LSA)
	r.Post("/word2vec", s.Word2Vec)

	r.Route("/text_nltk", func(r chi.Router) {
		r.Post("/tokenize", s.Tokenize)
		r.Post("/stem", s.Stem)
		r.Post("/lemmatize", s.Lemmatize)
		r.Post("/pos_tag", s.POSTag)
		r.Post("/ner", s.NER)
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: "textvec NLP microservice",
		Version: version.Version,
		Endpoints: map[string]string{
			"tf_idf":         "POST /tf-idf",
			"bag_of_words":   "POST /bag-of-words",
			"lsa":            "POST /lsa",
			"word2vec":       "POST /word2vec",
			"nltk_tokenize":  "POST /text_nltk/tokenize",
			"nltk_stem":      "POST /text_nltk/stem",
			"nltk_lemmatize": "POST /text_nltk/lemmatize",
			"nltk_pos":       "POST /text_nltk/pos_tag",
			"nltk_ner":       "POST /text_nltk/ner",
		},
	})
}

// TFIDF handles POST /tf-idf.
func (s *Server) TFIDF(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTexts(w, r)
	if !ok {
		return
	}
	res, err := s.vectorize.TFIDF(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matrixToDTO(res))
}

// BagOfWords handles POST /bag-of-words.
func (s *Server) BagOfWords(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTexts(w, r)
	if !ok {
		return
	}
	res, err := s.vectorize.BagOfWords(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matrixToDTO(res))
}

// LSA handles POST /lsa.
func (s *Server) LSA(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTexts(w, r)
	if !ok {
		return
	}
	res, err := s.vectorize.LSA(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LSAResponse{
		Success:     true,
		Components:  res.Components,
		Transformed: res.Transformed,
		Variance:    res.Variance,
		Vocabulary:  res.Vocabulary,
	})
}

// Word2Vec handles POST /word2vec.
func (s *Server) Word2Vec(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTexts(w, r)
	if !ok {
		return
	}
	res, err := s.vectorize.Embeddings(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EmbeddingResponse{
		Success:    true,
		Embeddings: res.Embeddings,
		Vocabulary: res.Vocabulary,
	})
}

// Tokenize handles POST /text_nltk/tokenize.
func (s *Server) Tokenize(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r)
	if !ok {
		return
	}
	tokens, err := s.annotate.Tokenize(r.Context(), text)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TokensResponse{Text: text, Tokens: orEmpty(tokens)})
}

// Stem handles POST /text_nltk/stem.
func (s *Server) Stem(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r)
	if !ok {
		return
	}
	stems, err := s.annotate.Stem(r.Context(), text)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StemsResponse{Text: text, Stems: orEmpty(stems)})
}

// Lemmatize handles POST /text_nltk/lemmatize.
func (s *Server) Lemmatize(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r)
	if !ok {
		return
	}
	lemmas, err := s.annotate.Lemmatize(r.Context(), text)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LemmasResponse{Text: text, Lemmas: orEmpty(lemmas)})
}

// POSTag handles POST /text_nltk/pos_tag.
func (s *Server) POSTag(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r)
	if !ok {
		return
	}
	tagged, err := s.annotate.POSTag(r.Context(), text)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, POSTagsResponse{Text: text, POSTags: posTagsToDTO(tagged)})
}

// NER handles POST /text_nltk/ner.
func (s *Server) NER(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r)
	if !ok {
		return
	}
	entities, err := s.annotate.NER(r.Context(), text)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EntitiesResponse{Text: text, Entities: entitiesToDTO(entities)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) decodeTexts(w http.ResponseWriter, r *http.Request) (vectorizeuc.Request, bool) {
	var req TextsRequest
	if !s.decode(w, r, &req) {
		return vectorizeuc.Request{}, false
	}
	texts, err := derefTexts(req.Texts)
	if err != nil {
		s.handleDomainError(w, r, err)
		return vectorizeuc.Request{}, false
	}
	return vectorizeuc.Request{
		Texts:       texts,
		MaxFeatures: req.MaxFeatures,
		Components:  req.Components,
	}, true
}

// derefTexts rejects null entries. A nil slice stays nil so the use case
// reports the missing field.
func derefTexts(in []*string) ([]string, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]string, len(in))
	for i, t := range in {
		if t == nil {
			return nil, domain.NewInvalidInput("texts", fmt.Sprintf("entry %d must be a string", i))
		}
		out[i] = *t
	}
	return out, nil
}

func (s *Server) decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req TextRequest
	if !s.decode(w, r, &req) {
		return "", false
	}
	if req.Text == nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "text is required")
		return "", false
	}
	return *req.Text, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	err := json.NewDecoder(body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusBadRequest, CodeBadRequest, "request body is empty")
	default:
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
	}
	return false
}

func matrixToDTO(res vectorizeuc.MatrixResult) MatrixResponse {
	return MatrixResponse{
		Success:    true,
		Matrix:     res.Matrix,
		Vocabulary: res.Vocabulary,
		Shape:      res.Shape,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The full message is returned since domain errors carry the offending field.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err), zap.String("path", r.URL.Path))
	writeError(w, http.StatusInternalServerError, CodeInternalError, err.Error())
}
