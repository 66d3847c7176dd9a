package session

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/ksdash/internal/client"
	"github.com/san-kum/ksdash/internal/logging"
)

const connectMessagePrefix = "Unable to connect to the simulation server. Please ensure the backend is running on "

// ConnectMessage is the single user-facing failure text.
func ConnectMessage(endpoint string) string {
	return connectMessagePrefix + endpoint
}

// Fetcher is the simulation client as seen by the controller.
type Fetcher interface {
	Fetch(ctx context.Context) (*client.Result, error)
}

// Controller runs the fetch-on-mount protocol. One Controller is one mount.
type Controller struct {
	fetcher  Fetcher
	endpoint string
	message  string
	log      logging.Logger

	life   context.Context
	cancel context.CancelFunc
	once   sync.Once

	mu    sync.RWMutex
	state State
}

func New(f Fetcher, endpoint string, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Noop()
	}
	life, cancel := context.WithCancel(context.Background())
	return &Controller{
		fetcher:  f,
		endpoint: endpoint,
		message:  ConnectMessage(endpoint),
		log:      log.With(logging.String("component", "session")),
		life:     life,
		cancel:   cancel,
		state:    Loading(),
	}
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Load performs the mount fetch. Only the first call reaches the client;
// later calls return the current state.
func (c *Controller) Load(ctx context.Context) State {
	c.once.Do(func() { c.load(ctx) })
	return c.State()
}

func (c *Controller) load(ctx context.Context) {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	release := context.AfterFunc(c.life, stop)
	defer release()

	res, err := c.fetcher.Fetch(ctx)

	// Torn down while in flight: drop the outcome.
	if c.life.Err() != nil {
		return
	}
	if err != nil {
		c.log.Error(ctx, "failed to fetch simulation data",
			logging.Err(err), logging.String("endpoint", c.endpoint))
	}

	c.mu.Lock()
	c.state = Reduce(c.state, Event{Result: res, Err: err}, c.message)
	c.mu.Unlock()
}

// Close tears the mount down and cancels an in-flight fetch.
func (c *Controller) Close() { c.cancel() }

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool { return c.life.Err() != nil }

// LoadedMsg delivers the settled state to a bubbletea model.
type LoadedMsg struct {
	State State
}

// LoadCmd wraps Load for bubbletea. A fetch discarded by Close produces no
// message.
func (c *Controller) LoadCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		st := c.Load(ctx)
		if !st.Settled() {
			return nil
		}
		return LoadedMsg{State: st}
	}
}
