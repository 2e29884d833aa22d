// Package screens holds the body content of each UI screen.
package screens

import (
	"context"

	"github.com/rook-computer/sysdeck/internal/render"
	"github.com/rook-computer/sysdeck/internal/state"
)

const homeTimeLayout = "2006-01-02 15:04:05"

// HomeScreen shows the wall clock.
type HomeScreen struct{}

func (HomeScreen) Start(ctx context.Context) error { return nil }
func (HomeScreen) Stop() error                     { return nil }

func (HomeScreen) Body(st state.State) render.Body {
	if st.Now.IsZero() {
		return render.Body{}
	}
	return render.Body{Text: st.Now.Format(homeTimeLayout)}
}
