package chi

import "github.com/kailas-cloud/textvec/internal/domain/annotation"

// ErrorCode is a machine-readable error identifier returned in error bodies.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeNotFound         ErrorCode = "not_found"
	CodeMethodNotAllowed ErrorCode = "method_not_allowed"
	CodePayloadTooLarge  ErrorCode = "payload_too_large"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// TextsRequest is the body of the vectorization endpoints.
// Entries are pointers so that a JSON null is distinguishable from "".
type TextsRequest struct {
	Texts       []*string `json:"texts"`
	MaxFeatures *int      `json:"max_features,omitempty"`
	Components  *int      `json:"n_components,omitempty"`
}

// TextRequest is the body of the annotation endpoints.
type TextRequest struct {
	Text *string `json:"text"`
}

// MatrixResponse is returned by /tf-idf and /bag-of-words.
type MatrixResponse struct {
	Success    bool           `json:"success"`
	Matrix     [][]float64    `json:"matrix"`
	Vocabulary map[int]string `json:"vocabulary"`
	Shape      [2]int         `json:"shape"`
}

// LSAResponse is returned by /lsa.
type LSAResponse struct {
	Success     bool        `json:"success"`
	Components  [][]float64 `json:"components"`
	Transformed [][]float64 `json:"transformed"`
	Variance    []float64   `json:"variance"`
	Vocabulary  []string    `json:"vocabulary"`
}

// EmbeddingResponse is returned by /word2vec.
type EmbeddingResponse struct {
	Success    bool        `json:"success"`
	Embeddings [][]float64 `json:"embeddings"`
	Vocabulary []string    `json:"vocabulary"`
}

// TokensResponse is returned by /text_nltk/tokenize.
type TokensResponse struct {
	Text   string   `json:"text"`
	Tokens []string `json:"tokens"`
}

// StemsResponse is returned by /text_nltk/stem.
type StemsResponse struct {
	Text  string   `json:"text"`
	Stems []string `json:"stems"`
}

// LemmasResponse is returned by /text_nltk/lemmatize.
type LemmasResponse struct {
	Text   string   `json:"text"`
	Lemmas []string `json:"lemmas"`
}

// POSTagsResponse is returned by /text_nltk/pos_tag. Each pair is [token, tag].
type POSTagsResponse struct {
	Text    string      `json:"text"`
	POSTags [][2]string `json:"pos_tags"`
}

// EntityDTO is a named entity in an NER response.
type EntityDTO struct {
	Entity string `json:"entity"`
	Type   string `json:"type"`
}

// EntitiesResponse is returned by /text_nltk/ner.
type EntitiesResponse struct {
	Text     string      `json:"text"`
	Entities []EntityDTO `json:"entities"`
}

// RootResponse lists the available endpoints.
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func posTagsToDTO(tagged []annotation.TaggedToken) [][2]string {
	out := make([][2]string, len(tagged))
	for i, t := range tagged {
		out[i] = [2]string{t.Text, t.Tag}
	}
	return out
}

func entitiesToDTO(entities []annotation.Entity) []EntityDTO {
	out := make([]EntityDTO, len(entities))
	for i, e := range entities {
		out[i] = EntityDTO{Entity: e.Text, Type: e.Type}
	}
	return out
}
