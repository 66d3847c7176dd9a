package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ksdash/internal/client"
	"github.com/san-kum/ksdash/internal/session"
)

var _ = Describe("Controller", func() {
	const endpoint = "http://localhost:8000"

	var (
		fetcher *fakeFetcher
		log     *recordingLogger
		ctrl    *session.Controller
	)

	BeforeEach(func() {
		fetcher = &fakeFetcher{}
		log = &recordingLogger{}
	})

	JustBeforeEach(func() {
		ctrl = session.New(fetcher, endpoint, log)
	})

	AfterEach(func() {
		ctrl.Close()
	})

	It("reproduces the connect message verbatim", func() {
		Expect(session.ConnectMessage(endpoint)).To(Equal(msg))
	})

	It("is loading before the fetch", func() {
		Expect(ctrl.State().IsLoading()).To(BeTrue())
		Expect(fetcher.calls.Load()).To(BeZero())
	})

	Context("when the backend returns a payload", func() {
		BeforeEach(func() {
			fetcher.result = &client.Result{Payload: json.RawMessage(`{"x":[0]}`)}
		})

		It("settles ready without logging", func() {
			s := ctrl.Load(context.Background())
			Expect(s.Phase()).To(Equal(session.PhaseReady))
			Expect(s.Data()).To(BeIdenticalTo(fetcher.result))
			Expect(s.Err()).To(BeEmpty())
			Expect(log.errorCount()).To(BeZero())
		})
	})

	Context("when the backend returns nothing", func() {
		It("fails with the connect message and does not log", func() {
			s := ctrl.Load(context.Background())
			Expect(s.Phase()).To(Equal(session.PhaseFailed))
			Expect(s.Err()).To(Equal(msg))
			Expect(s.Cause()).To(Equal(session.CauseAbsent))
			Expect(log.errorCount()).To(BeZero())
		})
	})

	Context("when the request fails", func() {
		BeforeEach(func() {
			fetcher.err = errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")
		})

		It("fails with the same message and logs exactly once", func() {
			s := ctrl.Load(context.Background())
			Expect(s.Phase()).To(Equal(session.PhaseFailed))
			Expect(s.Err()).To(Equal(msg))
			Expect(s.Cause()).To(Equal(session.CauseTransport))
			Expect(log.errorCount()).To(Equal(1))
		})
	})

	It("fetches once no matter how often it is asked", func() {
		for i := 0; i < 5; i++ {
			ctrl.Load(context.Background())
		}
		Expect(fetcher.calls.Load()).To(BeEquivalentTo(1))
	})

	Context("with concurrent callers", func() {
		BeforeEach(func() {
			fetcher.gate = make(chan struct{})
			fetcher.result = &client.Result{Payload: json.RawMessage(`{}`)}
		})

		It("still fetches once and everyone sees the settled state", func() {
			var wg sync.WaitGroup
			states := make([]session.State, 8)
			for i := range states {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					states[i] = ctrl.Load(context.Background())
				}(i)
			}
			Eventually(fetcher.calls.Load).Should(BeEquivalentTo(1))
			close(fetcher.gate)
			wg.Wait()

			Expect(fetcher.calls.Load()).To(BeEquivalentTo(1))
			for _, s := range states {
				Expect(s.Phase()).To(Equal(session.PhaseReady))
			}
		})
	})

	Context("when closed while the fetch is in flight", func() {
		BeforeEach(func() {
			fetcher.gate = make(chan struct{})
		})

		It("discards the outcome and stays loading", func() {
			done := make(chan session.State, 1)
			go func() { done <- ctrl.Load(context.Background()) }()

			Eventually(fetcher.calls.Load).Should(BeEquivalentTo(1))
			ctrl.Close()

			var s session.State
			Eventually(done, time.Second).Should(Receive(&s))
			Expect(s.IsLoading()).To(BeTrue())
			Expect(ctrl.Closed()).To(BeTrue())
			Expect(log.errorCount()).To(BeZero())
		})
	})

	Describe("LoadCmd", func() {
		It("delivers the settled state as a message", func() {
			m := ctrl.LoadCmd(context.Background())()
			loaded, ok := m.(session.LoadedMsg)
			Expect(ok).To(BeTrue())
			Expect(loaded.State.Err()).To(Equal(msg))
		})

		It("delivers nothing after Close", func() {
			ctrl.Close()
			Expect(ctrl.LoadCmd(context.Background())()).To(BeNil())
		})
	})
})
