package screens

import (
	"context"

	"github.com/rook-computer/sysdeck/internal/render"
	"github.com/rook-computer/sysdeck/internal/state"
)

// MenuScreen lists the screens reachable from the menu. It has no entries of
// its own yet and shows its heading only.
type MenuScreen struct {
	Labels  render.Labels
	Entries []string
}

func (*MenuScreen) Start(ctx context.Context) error { return nil }
func (*MenuScreen) Stop() error                     { return nil }

func (screen *MenuScreen) Body(state.State) render.Body {
	labels := screen.Labels
	if labels == nil {
		labels = render.IdentityLabels{}
	}
	body := render.Body{Text: labels.T("menu.heading")}
	if len(screen.Entries) == 0 {
		body.List = []string{labels.T("menu.empty")}
		return body
	}
	for _, entry := range screen.Entries {
		body.List = append(body.List, labels.T(entry))
	}
	return body
}
