package health

import "context"

// CachePinger checks result cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// AnnotatorChecker checks that the NLP annotator can process text.
type AnnotatorChecker interface {
	HealthCheck(ctx context.Context) error
}
