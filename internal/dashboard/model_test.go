package dashboard_test

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ksdash/internal/dashboard"
	"github.com/san-kum/ksdash/internal/render"
	"github.com/san-kum/ksdash/internal/session"
)

var _ = Describe("Dashboard", func() {
	const (
		endpoint = "http://localhost:8000"
		msg      = "Unable to connect to the simulation server. Please ensure the backend is running on http://localhost:8000"
	)

	var (
		fetcher *fakeFetcher
		log     *recordingLogger
		ctl     *session.Controller
		m       dashboard.Model
	)

	BeforeEach(func() {
		fetcher = &fakeFetcher{}
		log = &recordingLogger{}
	})

	JustBeforeEach(func() {
		ctl = session.New(fetcher, endpoint, log)
		m = dashboard.New(ctl, dashboard.WithSize(120, 40))
	})

	AfterEach(func() {
		ctl.Close()
	})

	exclusive := func(m dashboard.Model) {
		GinkgoHelper()
		Expect(m.Visualization() != nil && m.Controls() != nil).To(BeFalse(), "both panes mounted")
	}

	Describe("while the fetch is pending", func() {
		It("starts on the visualization tab in the loading state", func() {
			Expect(m.Mode()).To(Equal(dashboard.ModeVisualization))
			Expect(m.State().IsLoading()).To(BeTrue())
		})

		It("shows the placeholder and does not build the surface", func() {
			Expect(m.Visualization()).To(BeNil())
			view := m.View()
			Expect(view).To(ContainSubstring(dashboard.LoadingText))
			Expect(view).To(ContainSubstring(dashboard.Title))
			Expect(view).NotTo(ContainSubstring(dashboard.AlertIcon))
		})

		It("labels both tabs", func() {
			view := m.View()
			Expect(view).To(ContainSubstring("≈ Visualization"))
			Expect(view).To(ContainSubstring("⚙ Controls"))
		})

		It("does not fetch until Init runs", func() {
			_ = m.View()
			Expect(fetcher.calls.Load()).To(BeZero())
		})
	})

	Context("when the backend returns a result", func() {
		BeforeEach(func() {
			fetcher.result = present()
		})

		It("mounts the surface with the payload and no alert", func() {
			m = settle(m)
			Expect(m.State().Phase()).To(Equal(session.PhaseReady))
			Expect(m.Visualization()).NotTo(BeNil())
			Expect(m.Visualization().Empty()).To(BeFalse())
			Expect(m.Visualization().Field().Frames()).To(Equal(3))

			view := m.View()
			Expect(view).NotTo(ContainSubstring(dashboard.LoadingText))
			Expect(view).NotTo(ContainSubstring(dashboard.AlertIcon))
			Expect(log.errorCount()).To(BeZero())
		})

		It("fetches once no matter how often the model renders or updates", func() {
			m = settle(m)
			for i := 0; i < 20; i++ {
				_ = m.View()
				m, _ = update(m, tea.WindowSizeMsg{Width: 100 + i, Height: 30})
			}
			m = press(m, "2", "1", "tab", "tab", "t")
			run(m.Init())
			Expect(fetcher.calls.Load()).To(BeEquivalentTo(1))
		})

		It("keeps the session state across tab switches", func() {
			m = settle(m)
			before := m.State()
			first := m.Visualization().ID()

			m = press(m, "2")
			Expect(m.Mode()).To(Equal(dashboard.ModeControls))
			Expect(m.Controls()).NotTo(BeNil())
			Expect(m.Visualization()).To(BeNil())
			Expect(m.State()).To(Equal(before))

			m = press(m, "1")
			Expect(m.Mode()).To(Equal(dashboard.ModeVisualization))
			Expect(m.Controls()).To(BeNil())
			Expect(m.Visualization()).NotTo(BeNil())
			Expect(m.Visualization().ID()).NotTo(Equal(first))
			Expect(m.Visualization().Empty()).To(BeFalse())
			Expect(m.State()).To(Equal(before))
		})

		It("ignores animation ticks for a discarded surface", func() {
			m = settle(m)
			stale := m.Visualization().ID()
			m = press(m, "c", "v")
			frame := m.Visualization().Frame()

			var cmd tea.Cmd
			m, cmd = update(m, render.TickMsg{ID: stale})
			Expect(cmd).To(BeNil())
			Expect(m.Visualization().Frame()).To(Equal(frame))
		})
	})

	Context("when the backend has no result", func() {
		It("shows the connect alert and the empty surface without logging", func() {
			m = settle(m)
			Expect(m.State().Phase()).To(Equal(session.PhaseFailed))
			Expect(m.State().Err()).To(Equal(msg))
			Expect(m.Visualization()).NotTo(BeNil())
			Expect(m.Visualization().Empty()).To(BeTrue())

			view := m.View()
			Expect(view).To(ContainSubstring(dashboard.AlertIcon))
			Expect(view).To(ContainSubstring("Please ensure the backend"))
			Expect(view).To(ContainSubstring(render.EmptyText))
			Expect(log.errorCount()).To(BeZero())
		})

		It("keeps the alert across a visit to the controls tab", func() {
			m = settle(m)
			m = press(m, "c")
			Expect(m.Controls()).NotTo(BeNil())
			Expect(m.View()).To(ContainSubstring(dashboard.AlertIcon))

			m = press(m, "v")
			Expect(m.State().Err()).To(Equal(msg))
			Expect(m.View()).To(ContainSubstring(dashboard.AlertIcon))
			Expect(m.Visualization().Empty()).To(BeTrue())
		})
	})

	Context("when the request fails", func() {
		BeforeEach(func() {
			fetcher.err = errors.New("dial tcp 127.0.0.1:8000: connection refused")
		})

		It("shows the same alert and logs the failure once", func() {
			m = settle(m)
			Expect(m.State().Err()).To(Equal(msg))
			Expect(m.State().Data()).To(BeNil())
			Expect(m.View()).To(ContainSubstring(dashboard.AlertIcon))
			Expect(log.errorCount()).To(Equal(1))
		})

		It("leaves the controls tab usable", func() {
			m = press(settle(m), "c")
			Expect(m.Controls()).NotTo(BeNil())
			Expect(m.View()).To(ContainSubstring("learning_rate"))
		})
	})

	Describe("mode selection", func() {
		It("does not disturb a pending fetch", func() {
			m = press(m, "tab")
			Expect(m.Mode()).To(Equal(dashboard.ModeControls))
			Expect(m.State().IsLoading()).To(BeTrue())
			Expect(m.Controls()).NotTo(BeNil())

			fetcher.result = present()
			m = settle(m)
			Expect(m.Mode()).To(Equal(dashboard.ModeControls))
			Expect(m.Controls()).NotTo(BeNil())
			Expect(m.Visualization()).To(BeNil())
			Expect(m.State().Phase()).To(Equal(session.PhaseReady))

			m = press(m, "shift+tab")
			Expect(m.Visualization()).NotTo(BeNil())
			Expect(m.Visualization().Empty()).To(BeFalse())
		})

		It("keeps the placeholder when visualization is selected while loading", func() {
			m = press(m, "2", "1")
			Expect(m.Visualization()).To(BeNil())
			Expect(m.View()).To(ContainSubstring(dashboard.LoadingText))
		})

		DescribeTable("never mounts both panes",
			func(keys ...string) {
				fetcher.result = present()
				m = settle(m)
				for _, k := range keys {
					m = press(m, k)
					exclusive(m)
				}
			},
			Entry("toggle", "tab", "tab", "tab"),
			Entry("direct", "1", "2", "2", "1", "v", "c"),
			Entry("theme while on controls", "c", "t", "t", "v", "t"),
		)

		It("builds a fresh editor on every visit", func() {
			m = press(m, "c", "l")
			edited := m.Controls().Params()
			m = press(m, "v", "c")
			Expect(m.Controls().Params()).NotTo(Equal(edited))
		})

		It("gives a field being edited the whole keyboard", func() {
			m = press(m, "c", "enter")
			Expect(m.Controls().Editing()).To(BeTrue())

			var cmd tea.Cmd
			m, cmd = update(m, keyMsg("q"))
			Expect(cmd).To(BeNil())
			m = press(m, "1")
			Expect(m.Mode()).To(Equal(dashboard.ModeControls))
			Expect(ctl.Closed()).To(BeFalse())

			m = press(m, "esc", "1")
			Expect(m.Mode()).To(Equal(dashboard.ModeVisualization))
		})
	})

	It("closes the session on quit", func() {
		_, cmd := update(m, keyMsg("q"))
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(Equal(tea.QuitMsg{}))
		Expect(ctl.Closed()).To(BeTrue())
	})

	It("drops a result that arrives after quit", func() {
		update(m, keyMsg("q"))
		fetcher.result = present()
		Expect(run(ctl.LoadCmd(context.Background()))).To(BeEmpty())
		Expect(ctl.State().IsLoading()).To(BeTrue())
	})
})
