package dashboard

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ksdash/internal/client"
	"github.com/san-kum/ksdash/internal/config"
	"github.com/san-kum/ksdash/internal/logging"
	"github.com/san-kum/ksdash/internal/session"
	"github.com/san-kum/ksdash/internal/theme"
)

// Run starts the full-screen dashboard against cfg.Endpoint and blocks until
// the user quits or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	if log == nil {
		log = logging.Noop()
	}
	c := client.New(cfg.Endpoint, cfg.RequestTimeout)
	ctl := session.New(c, c.Endpoint(), log)
	defer ctl.Close()

	m := New(ctl,
		WithContext(ctx),
		WithTheme(theme.Get(cfg.Theme)),
		WithFPS(cfg.FPS),
		WithParams(cfg.Params),
		WithSubmitter(c),
	)

	log.Info(ctx, "dashboard starting", logging.String("endpoint", c.Endpoint()))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
