package component

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestMounter(reg *Registry, opts ...MounterOption) *Mounter {
	return NewMounter(reg, append([]MounterOption{WithLogger(quietLogger)}, opts...)...)
}

// counting returns an InitFunc that counts invocations and whose disposer
// counts disposals.
func counting(mounts, disposals *atomic.Int32) InitFunc {
	return func(_ context.Context, el *dom.Element, _ any) (Disposer, error) {
		mounts.Add(1)
		el.SetAttr("data-mounted", "true")
		return func() { disposals.Add(1) }, nil
	}
}

func TestMountAll_EagerRecordsDisposer(t *testing.T) {
	var mounts, disposals atomic.Int32
	reg := NewRegistry()
	reg.MustRegister("widget", Eager{Init: counting(&mounts, &disposals)})

	doc := mustParse(t, `<body><div id="w" data-component="widget"></div></body>`)
	m := newTestMounter(reg)

	got, err := m.MountAll(context.Background(), doc.Body())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(1), mounts.Load())

	records := m.Ledger().Records()
	require.Len(t, records, 1)
	assert.Equal(t, "widget", records[0].Component)
	assert.True(t, records[0].Container.Same(doc.GetElementByID("w")))
	assert.Equal(t, StateMounted, records[0].State())

	// The recorded disposer is the one the implementation returned.
	records[0].Disposer()()
	assert.Equal(t, int32(1), disposals.Load())
	got[0]()
	assert.Equal(t, int32(2), disposals.Load())
}

func TestMountAll_DeferredLoaderIsLazy(t *testing.T) {
	var loads, mounts, disposals atomic.Int32
	loader := func(context.Context) (*Module, error) {
		loads.Add(1)
		return &Module{Default: counting(&mounts, &disposals)}, nil
	}

	reg := NewRegistry()
	reg.MustRegister("lazy", Deferred{Load: loader})
	reg.MustRegister("unused", Deferred{Load: func(context.Context) (*Module, error) {
		t.Error("loader for an absent component must not run")
		return nil, nil
	}})

	doc := mustParse(t, `<body>
		<div data-component="lazy"></div>
		<div data-component="lazy"></div>
		<div data-component="lazy"></div>
	</body>`)
	m := newTestMounter(reg)

	assert.Equal(t, int32(0), loads.Load())

	_, err := m.MountAll(context.Background(), doc.Body())
	require.NoError(t, err)
	assert.Equal(t, int32(3), loads.Load())
	assert.Equal(t, int32(3), mounts.Load())
	assert.Equal(t, 3, m.Ledger().Len())
}

func TestMountAll_MissingName(t *testing.T) {
	var mounts, disposals atomic.Int32
	reg := NewRegistry()
	reg.MustRegister("widget", Eager{Init: counting(&mounts, &disposals)})

	doc := mustParse(t, `<body>
		<div id="ok1" data-component="widget"></div>
		<div id="bad" data-component=""></div>
		<div id="ok2" data-component="widget"></div>
	</body>`)
	m := newTestMounter(reg)

	got, err := m.MountAll(context.Background(), doc.Body())
	require.Error(t, err)
	assert.Nil(t, got)

	var cerr *Error
	require.True(t, stderrors.As(err, &cerr))
	assert.Equal(t, KindConfiguration, cerr.Kind)
	assert.True(t, cerr.Container.Same(doc.GetElementByID("bad")))
	assert.Contains(t, err.Error(), `id="bad"`)
	assert.Equal(t, errors.ErrCodeConfiguration, errors.CodeOf(err))

	// Siblings settle and are mounted exactly once.
	assert.Equal(t, int32(2), mounts.Load())
	assert.Equal(t, 2, m.Ledger().Len())
}

func TestMountAll_UnrecognizedName(t *testing.T) {
	reg := NewRegistry()
	doc := mustParse(t, `<body><div data-component="nonexistent"></div></body>`)

	_, err := newTestMounter(reg).MountAll(context.Background(), doc.Body())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")

	var cerr *Error
	require.True(t, stderrors.As(err, &cerr))
	assert.Equal(t, KindResolution, cerr.Kind)
	assert.NotNil(t, cerr.Container)
}

func TestMountAll_NestedIdempotence(t *testing.T) {
	var mounts atomic.Int32
	reg := NewRegistry()
	reg.MustRegister("panel", Eager{Init: func(_ context.Context, el *dom.Element, _ any) (Disposer, error) {
		mounts.Add(1)
		return nil, nil
	}})

	doc := mustParse(t, `<body>
		<div id="a" data-component="panel">
			<div id="b" data-component="panel"></div>
		</div>
	</body>`)
	m := newTestMounter(reg)

	_, err := m.MountAll(context.Background(), doc.Body())
	require.NoError(t, err)
	assert.Equal(t, int32(1), mounts.Load())

	records := m.Ledger().Records()
	require.Len(t, records, 1)
	assert.True(t, records[0].Container.Same(doc.GetElementByID("a")))
}

func TestMountAll_CompositeRescansRenderedSubtree(t *testing.T) {
	var childMounts atomic.Int32
	reg := NewRegistry()
	reg.MustRegister("child", Eager{Init: func(context.Context, *dom.Element, any) (Disposer, error) {
		childMounts.Add(1)
		return nil, nil
	}})
	reg.MustRegister("composite", Deferred{Load: func(context.Context) (*Module, error) {
		return &Module{Default: func(ctx context.Context, el *dom.Element, _ any) (Disposer, error) {
			if err := el.SetInnerHTML(`<div data-component="child"></div><div data-component="child"></div>`); err != nil {
				return nil, err
			}
			inner, ok := MounterFromContext(ctx)
			if !ok {
				return nil, fmt.Errorf("no mounter in context")
			}
			if _, err := inner.MountAll(ctx, el); err != nil {
				return nil, err
			}
			return nil, nil
		}}, nil
	}})

	doc := mustParse(t, `<body><div data-component="composite"></div></body>`)
	m := newTestMounter(reg)

	_, err := m.MountAll(context.Background(), doc.Body())
	require.NoError(t, err)
	assert.Equal(t, int32(2), childMounts.Load())
	assert.Equal(t, 3, m.Ledger().Len())

	// A later pass over the page reaches the children only through the composite.
	m2 := newTestMounter(reg)
	_, err = m2.MountAll(context.Background(), doc.Body())
	require.NoError(t, err)
	assert.Equal(t, int32(4), childMounts.Load(), "composite re-renders and rescans its own children")
}

func TestMountAll_ImplementationErrors(t *testing.T) {
	sentinel := stderrors.New("boom")

	tests := []struct {
		name     string
		strategy Strategy
		wantMsg  string
		wantIs   error
	}{
		{
			name: "init error",
			strategy: Eager{Init: func(context.Context, *dom.Element, any) (Disposer, error) {
				return nil, sentinel
			}},
			wantMsg: "failed to initialize",
			wantIs:  sentinel,
		},
		{
			name: "init panic",
			strategy: Eager{Init: func(context.Context, *dom.Element, any) (Disposer, error) {
				panic("kaboom")
			}},
			wantMsg: "panicked",
		},
		{
			name: "loader error",
			strategy: Deferred{Load: func(context.Context) (*Module, error) {
				return nil, sentinel
			}},
			wantMsg: "failed to load",
			wantIs:  sentinel,
		},
		{
			name: "module without default",
			strategy: Deferred{Load: func(context.Context) (*Module, error) {
				return &Module{}, nil
			}},
			wantMsg: "no default implementation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			reg.MustRegister("broken", tt.strategy)
			doc := mustParse(t, `<body><div data-component="broken"></div></body>`)

			m := newTestMounter(reg)
			_, err := m.MountAll(context.Background(), doc.Body())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var cerr *Error
			require.True(t, stderrors.As(err, &cerr))
			assert.Equal(t, KindImplementation, cerr.Kind)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.Equal(t, 0, m.Ledger().Len())
		})
	}
}

func TestMountAll_LoaderTimeout(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("slow", Deferred{Load: func(ctx context.Context) (*Module, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}})
	doc := mustParse(t, `<body><div data-component="slow"></div></body>`)

	m := newTestMounter(reg, WithLoaderTimeout(10*time.Millisecond))
	_, err := m.MountAll(context.Background(), doc.Body())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMountAll_Isolation(t *testing.T) {
	var mounts, disposals atomic.Int32
	reg := NewRegistry()
	reg.MustRegister("widget", Eager{Init: counting(&mounts, &disposals)})

	doc := mustParse(t, `<body>
		<div data-component="widget"></div>
		<div data-component="nonexistent"></div>
		<div data-component="widget"><script data-component-config>{oops</script></div>
		<div data-component="widget"></div>
	</body>`)

	m := newTestMounter(reg, WithIsolation(true))
	assert.True(t, m.Isolated())

	got, err := m.MountAll(context.Background(), doc.Body())
	require.Error(t, err)
	assert.Len(t, got, 2)

	var batch *BatchError
	require.True(t, stderrors.As(err, &batch))
	require.Len(t, batch.Failures, 2)
	assert.Equal(t, KindResolution, batch.Failures[0].Kind)
	assert.Equal(t, KindPayload, batch.Failures[1].Kind)
	assert.Contains(t, err.Error(), "2 components failed")

	var cerr *Error
	require.True(t, stderrors.As(err, &cerr))
	assert.Equal(t, KindResolution, cerr.Kind)

	assert.Equal(t, int32(2), mounts.Load())
	assert.Equal(t, 2, m.Ledger().Len())
}

func TestMountAll_ConfigPassedToImplementation(t *testing.T) {
	var (
		mu  sync.Mutex
		got []any
	)
	reg := NewRegistry()
	reg.MustRegister("echo", Eager{Init: func(_ context.Context, _ *dom.Element, config any) (Disposer, error) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, config)
		return nil, nil
	}})

	doc := mustParse(t, `<body>
		<div data-component="echo"><script data-component-config>"hello"</script></div>
	</body>`)

	_, err := newTestMounter(reg).MountAll(context.Background(), doc.Body())
	require.NoError(t, err)
	assert.Equal(t, []any{"hello"}, got)
}

func TestMountAll_EmptyAndNilRoot(t *testing.T) {
	m := newTestMounter(NewRegistry())

	got, err := m.MountAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	doc := mustParse(t, `<body><p>no widgets here</p></body>`)
	got, err = m.MountAll(context.Background(), doc.Body())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, m.Ledger().Len())
}

func TestMountAll_SharedLedger(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("widget", Eager{Init: nopInit})
	ledger := NewLedger()

	doc := mustParse(t, `<body><div id="one" data-component="widget"></div><div id="two" data-component="widget"></div></body>`)

	for _, id := range []string{"one", "two"} {
		m := newTestMounter(reg, WithLedger(ledger))
		assert.Same(t, ledger, m.Ledger())
		_, err := m.MountAll(context.Background(), doc.GetElementByID(id).Parent())
		require.NoError(t, err)
	}
	assert.Equal(t, 4, ledger.Len())
}
