package textvec

// MatrixResult is a document-term matrix.
type MatrixResult struct {
	Matrix     [][]float64    `json:"matrix"`
	Vocabulary map[int]string `json:"vocabulary"` // column index -> term
	Shape      [2]int         `json:"shape"`      // [documents, features]
}

// LSAResult is a latent semantic analysis of a collection.
type LSAResult struct {
	Components  [][]float64 `json:"components"`
	Transformed [][]float64 `json:"transformed"`
	Variance    []float64   `json:"variance"`
	Vocabulary  []string    `json:"vocabulary"`
}

// EmbeddingResult holds per-document SVD embeddings.
type EmbeddingResult struct {
	Embeddings [][]float64 `json:"embeddings"`
	Vocabulary []string    `json:"vocabulary"`
}

// TaggedToken is a token with its Penn Treebank tag.
type TaggedToken struct {
	Text string
	Tag  string
}

// Entity is a named entity.
type Entity struct {
	Text string `json:"entity"`
	Type string `json:"type"`
}

// HealthStatus represents the aggregated service health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded"
	Checks map[string]string `json:"checks"` // component -> "ok"/"error"
}

// ServiceInfo describes the server.
type ServiceInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type vectorizeRequest struct {
	Texts       []string `json:"texts"`
	MaxFeatures *int     `json:"max_features,omitempty"`
	Components  *int     `json:"n_components,omitempty"`
}

type textRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
