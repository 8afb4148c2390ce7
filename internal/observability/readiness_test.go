package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubReadiness struct {
	err   error
	calls int
}

func (s *stubReadiness) CheckReadiness(_ context.Context) error {
	s.calls++
	return s.err
}

func TestReadinessGroup(t *testing.T) {
	loading := errors.New("still loading")
	unbuilt := errors.New("views not built")

	tests := []struct {
		name    string
		members []error
		want    error
	}{
		{"empty group is ready", nil, nil},
		{"all ready", []error{nil, nil}, nil},
		{"first failure wins", []error{loading, unbuilt}, loading},
		{"downstream failure reported", []error{nil, unbuilt}, unbuilt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g ReadinessGroup
			for _, err := range tt.members {
				g = append(g, &stubReadiness{err: err})
			}

			err := g.CheckReadiness(context.Background())

			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadinessGroup_StopsAtFirstFailure(t *testing.T) {
	first := &stubReadiness{err: errors.New("load failed")}
	second := &stubReadiness{}

	_ = ReadinessGroup{first, second}.CheckReadiness(context.Background())

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}
