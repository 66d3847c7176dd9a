package session_test

import (
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ksdash/internal/client"
	"github.com/san-kum/ksdash/internal/session"
)

const msg = "Unable to connect to the simulation server. Please ensure the backend is running on http://localhost:8000"

func exclusive(s session.State) {
	switch s.Phase() {
	case session.PhaseLoading:
		Expect(s.IsLoading()).To(BeTrue())
		Expect(s.Err()).To(BeEmpty())
		Expect(s.Data()).To(BeNil())
	case session.PhaseReady:
		Expect(s.IsLoading()).To(BeFalse())
		Expect(s.Err()).To(BeEmpty())
		Expect(s.Data()).NotTo(BeNil())
	case session.PhaseFailed:
		Expect(s.IsLoading()).To(BeFalse())
		Expect(s.Err()).NotTo(BeEmpty())
		Expect(s.Data()).To(BeNil())
	default:
		Fail("unknown phase")
	}
}

var _ = Describe("Reduce", func() {
	result := &client.Result{Payload: json.RawMessage(`{"u":[[1]]}`)}

	It("starts in the loading phase", func() {
		var zero session.State
		Expect(zero.Phase()).To(Equal(session.PhaseLoading))
		Expect(session.Loading()).To(Equal(zero))
		exclusive(zero)
	})

	DescribeTable("settles a loading state",
		func(ev session.Event, phase session.Phase, cause session.Cause) {
			s := session.Reduce(session.Loading(), ev, msg)
			Expect(s.Phase()).To(Equal(phase))
			Expect(s.Cause()).To(Equal(cause))
			exclusive(s)
		},
		Entry("present result", session.Event{Result: result}, session.PhaseReady, session.CauseNone),
		Entry("absence", session.Event{}, session.PhaseFailed, session.CauseAbsent),
		Entry("transport failure", session.Event{Err: errors.New("dial tcp: refused")}, session.PhaseFailed, session.CauseTransport),
		Entry("error alongside a result", session.Event{Result: result, Err: errors.New("partial")}, session.PhaseFailed, session.CauseTransport),
	)

	It("renders the same message for absence and transport failure", func() {
		absent := session.Reduce(session.Loading(), session.Event{}, msg)
		failed := session.Reduce(session.Loading(), session.Event{Err: errors.New("x")}, msg)
		Expect(absent.Err()).To(Equal(msg))
		Expect(failed.Err()).To(Equal(msg))
	})

	It("never lets a late failure overwrite success", func() {
		s := session.Reduce(session.Loading(), session.Event{Result: result}, msg)
		s = session.Reduce(s, session.Event{Err: errors.New("late")}, msg)
		Expect(s.Phase()).To(Equal(session.PhaseReady))
		Expect(s.Data()).To(BeIdenticalTo(result))
	})

	It("never lets a late success overwrite failure", func() {
		s := session.Reduce(session.Loading(), session.Event{}, msg)
		s = session.Reduce(s, session.Event{Result: result}, msg)
		Expect(s.Phase()).To(Equal(session.PhaseFailed))
		Expect(s.Data()).To(BeNil())
	})

	It("does not return to loading once settled", func() {
		s := session.Reduce(session.Loading(), session.Event{}, msg)
		for i := 0; i < 3; i++ {
			s = session.Reduce(s, session.Event{Result: result}, msg)
			Expect(s.IsLoading()).To(BeFalse())
		}
	})

	It("names its phases", func() {
		Expect(session.PhaseLoading.String()).To(Equal("loading"))
		Expect(session.PhaseReady.String()).To(Equal("ready"))
		Expect(session.PhaseFailed.String()).To(Equal("failed"))
	})
})
