package mailbox

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollEmpty(t *testing.T) {
	m := New()

	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, Delivery{Kind: KindNone}, m.Poll())
}

func TestLastEditWins(t *testing.T) {
	m := New()
	for i := 1; i <= 5; i++ {
		m.SubmitEdit(json.RawMessage(fmt.Sprintf(`{"linha":%d}`, i)))
	}

	d := m.Poll()
	assert.Equal(t, KindEditor, d.Kind)
	assert.JSONEq(t, `{"linha":5}`, string(d.Payload))
	assert.Equal(t, KindNone, m.Poll().Kind)
}

func TestEditHasPriorityOverReadRequest(t *testing.T) {
	m := New()
	m.SubmitEdit(json.RawMessage(`{"linha":1}`))
	m.RequestRead()
	assert.Equal(t, StateEditAndReadPending, m.State())

	first := m.Poll()
	assert.Equal(t, KindEditor, first.Kind)
	assert.JSONEq(t, `{"linha":1}`, string(first.Payload))
	assert.Equal(t, StateReadPending, m.State())

	second := m.Poll()
	assert.Equal(t, Delivery{Kind: KindReadRequest}, second)
	assert.Equal(t, StateIdle, m.State())
}

func TestReadRequestAfterEditStillLosesPriority(t *testing.T) {
	m := New()
	m.RequestRead()
	m.SubmitEdit(json.RawMessage(`"x"`))

	assert.Equal(t, KindEditor, m.Poll().Kind)
	assert.Equal(t, KindReadRequest, m.Poll().Kind)
	assert.Equal(t, KindNone, m.Poll().Kind)
}

func TestReadRequestIsNotSticky(t *testing.T) {
	m := New()
	m.RequestRead()
	m.RequestRead()
	assert.Equal(t, StateReadPending, m.State())

	assert.Equal(t, KindReadRequest, m.Poll().Kind)
	assert.Equal(t, KindNone, m.Poll().Kind)
}

func TestSubmitEditCopiesPayload(t *testing.T) {
	m := New()
	payload := json.RawMessage(`{"a":1}`)
	m.SubmitEdit(payload)
	payload[2] = 'b'

	assert.JSONEq(t, `{"a":1}`, string(m.Poll().Payload))
}

func TestEmptyPayloadIsStillAnEdit(t *testing.T) {
	var m Mailbox
	m.SubmitEdit(json.RawMessage{})

	assert.Equal(t, StateEditPending, m.State())
	assert.Equal(t, KindEditor, m.Poll().Kind)
}

func TestConcurrentPollsDeliverEditOnce(t *testing.T) {
	m := New()
	m.SubmitEdit(json.RawMessage(`{"linha":7}`))
	m.RequestRead()

	const pollers = 64
	results := make(chan Delivery, pollers)
	var wg sync.WaitGroup
	for i := 0; i < pollers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- m.Poll()
		}()
	}
	wg.Wait()
	close(results)

	counts := map[Kind]int{}
	for d := range results {
		counts[d.Kind]++
	}
	require.Equal(t, 1, counts[KindEditor])
	require.Equal(t, 1, counts[KindReadRequest])
	require.Equal(t, pollers-2, counts[KindNone])
}
