package observability

import (
	"context"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// ReadinessGroup is ready when every member is. CheckReadiness reports the
// first member's error, so order members from upstream to downstream.
type ReadinessGroup []sharedobs.ReadinessChecker

func (g ReadinessGroup) CheckReadiness(ctx context.Context) error {
	for _, c := range g {
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}
