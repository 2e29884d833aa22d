package screens

import (
	"context"

	"github.com/rook-computer/sysdeck/internal/render"
	"github.com/rook-computer/sysdeck/internal/state"
)

// SystemInfoScreen lays the sampled metric lines out as a list, one item per
// metric.
type SystemInfoScreen struct{}

func (SystemInfoScreen) Start(ctx context.Context) error { return nil }
func (SystemInfoScreen) Stop() error                     { return nil }

func (SystemInfoScreen) Body(st state.State) render.Body {
	return render.Body{List: append([]string(nil), st.Metrics...)}
}
