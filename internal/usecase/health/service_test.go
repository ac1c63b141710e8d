package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockCachePinger struct {
	err error
}

func (m *mockCachePinger) Ping(_ context.Context) error { return m.err }

type mockAnnotatorChecker struct {
	err error
}

func (m *mockAnnotatorChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		annotator  error
		cache      CachePinger
		wantStatus Status
		wantChecks map[string]CheckResult
	}{
		{
			name:       "all healthy",
			cache:      &mockCachePinger{},
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{"annotator": CheckOK, "cache": CheckOK},
		},
		{
			name:       "cache down",
			cache:      &mockCachePinger{err: errors.New("conn refused")},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{"annotator": CheckOK, "cache": CheckError},
		},
		{
			name:       "annotator down",
			annotator:  errors.New("model not loaded"),
			cache:      &mockCachePinger{},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{"annotator": CheckError, "cache": CheckOK},
		},
		{
			name:       "cache disabled",
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{"annotator": CheckOK},
		},
		{
			name:       "cache disabled, annotator down",
			annotator:  errors.New("fail"),
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{"annotator": CheckError},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(&mockAnnotatorChecker{err: tc.annotator}, tc.cache)
			r := svc.Check(context.Background())

			if r.Status != tc.wantStatus {
				t.Errorf("expected %q, got %q", tc.wantStatus, r.Status)
			}
			if len(r.Checks) != len(tc.wantChecks) {
				t.Errorf("expected checks %v, got %v", tc.wantChecks, r.Checks)
			}
			for name, want := range tc.wantChecks {
				if r.Checks[name] != want {
					t.Errorf("expected %s %q, got %q", name, want, r.Checks[name])
				}
			}
		})
	}
}
