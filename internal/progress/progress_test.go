package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	events []Event
}

func (r *recordingSink) Progress(event Event) {
	r.events = append(r.events, event)
}

func (r *recordingSink) last() Event {
	return r.events[len(r.events)-1]
}

func TestSessionPercent(t *testing.T) {
	sink := &recordingSink{}
	session := NewSession(sink, "Installing extensions", 4)

	assert.Equal(t, 0, session.Percent())

	session.Increment()
	assert.Equal(t, 25, session.Percent())

	session.Increment()
	session.Increment()
	assert.Equal(t, 75, session.Percent())

	session.Increment()
	assert.Equal(t, 100, session.Percent())
}

func TestReportDoesNotAdvance(t *testing.T) {
	sink := &recordingSink{}
	session := NewSession(sink, "Installing extensions", 2)

	session.Report("Installing golang.go")

	assert.Equal(t, 0, session.Percent())
	assert.Equal(t, "Installing golang.go", sink.last().Message)
	assert.Equal(t, 0, sink.last().Percent)
}

func TestAddTotalGrowsDenominator(t *testing.T) {
	sink := &recordingSink{}
	session := NewSession(sink, "Installing extensions", 2)

	session.Increment()
	assert.Equal(t, 50, session.Percent())

	// Two more items arrive while the queue is draining.
	session.AddTotal(2)
	assert.Equal(t, 25, session.Percent())

	session.Increment()
	session.Increment()
	session.Increment()
	assert.Equal(t, 100, session.Percent())
}

func TestZeroTotal(t *testing.T) {
	sink := &recordingSink{}
	session := NewSession(sink, "Installing extensions", 0)
	assert.Equal(t, 0, session.Percent())
}

func TestDoneEvent(t *testing.T) {
	sink := &recordingSink{}
	session := NewSession(sink, "Installing extensions", 1)
	session.Increment()
	session.Done()

	assert.True(t, sink.last().Done)
	assert.Equal(t, 100, sink.last().Percent)
}
