package component

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_DisposeAllOrderAndIdempotence(t *testing.T) {
	doc := mustParse(t, `<body><div id="a"></div><div id="b"></div><div id="c"></div></body>`)
	ledger := NewLedger()

	var order []string
	for _, id := range []string{"a", "b", "c"} {
		ledger.Record("w", doc.GetElementByID(id), func() { order = append(order, id) })
	}
	records := ledger.Records()
	require.Len(t, records, 3)

	assert.Equal(t, 3, ledger.DisposeAll())
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, ledger.Len())
	for _, rec := range records {
		assert.Equal(t, StateDisposed, rec.State())
	}

	assert.Equal(t, 0, ledger.DisposeAll())
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestLedger_NilDisposer(t *testing.T) {
	doc := mustParse(t, `<body><div id="a"></div></body>`)
	ledger := NewLedger()

	rec := ledger.Record("w", doc.GetElementByID("a"), nil)
	require.NotNil(t, rec.Disposer())
	assert.Equal(t, StateMounted, rec.State())
	assert.Equal(t, 1, ledger.DisposeAll())
}

func TestLedger_PanickingDisposer(t *testing.T) {
	doc := mustParse(t, `<body><div id="a"></div><div id="b"></div></body>`)
	ledger := NewLedger()

	ran := false
	ledger.Record("bad", doc.GetElementByID("a"), func() { panic("dispose failed") })
	ledger.Record("good", doc.GetElementByID("b"), func() { ran = true })

	assert.NotPanics(t, func() {
		assert.Equal(t, 2, ledger.DisposeAll())
	})
	assert.True(t, ran)
}

func TestLedger_ConcurrentRecord(t *testing.T) {
	doc := mustParse(t, `<body><div id="a"></div></body>`)
	el := doc.GetElementByID("a")
	ledger := NewLedger()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ledger.Record("w", el, nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, ledger.Len())
	assert.Equal(t, 50, ledger.DisposeAll())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unmounted", StateUnmounted.String())
	assert.Equal(t, "mounting", StateMounting.String())
	assert.Equal(t, "mounted", StateMounted.String())
	assert.Equal(t, "disposed", StateDisposed.String())
	assert.Equal(t, "State(9)", State(9).String())
}
