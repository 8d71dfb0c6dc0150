package page

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
	"github.com/Princeton-CDH/cdhweb-components/pkg/header"
	"github.com/Princeton-CDH/cdhweb-components/pkg/serializer"
	"github.com/Princeton-CDH/cdhweb-components/pkg/storage"
)

const testPage = `<!DOCTYPE html>
<html><body>
  <div id="hello" data-component="greeting"><script data-component-config>"world"</script></div>
  <div id="broken" data-component="nonexistent"></div>
</body></html>`

func testRegistry() *component.Registry {
	reg := component.NewRegistry()
	reg.MustRegister("greeting", component.Eager{Init: func(_ context.Context, el *dom.Element, config any) (component.Disposer, error) {
		name, _ := config.(string)
		el.SetAttr("data-greeting", "hello "+name)
		return func() { el.RemoveAttr("data-greeting") }, nil
	}})
	return reg
}

func TestHydrate_Strict(t *testing.T) {
	res, err := Hydrate(context.Background(), strings.NewReader(testPage), Options{Registry: testRegistry()})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Contains(t, err.Error(), "nonexistent")
	assert.Equal(t, 1, res.Mounted, "the sibling still mounted")
}

func TestHydrate_Isolated(t *testing.T) {
	store := storage.NewMemory()
	res, err := Hydrate(context.Background(), strings.NewReader(testPage), Options{
		Registry: testRegistry(),
		Storage:  store,
		Isolate:  true,
		Location: "/people/",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Mounted)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, component.KindResolution, res.Failures[0].Kind)
	assert.Same(t, store, res.Document.Storage())

	var buf bytes.Buffer
	require.NoError(t, res.Render(&buf))
	assert.Contains(t, buf.String(), `data-greeting="hello world"`)

	rep := res.Report("test.html", "v0.0.1")
	assert.Equal(t, "/people/", rep.Location)
	assert.Equal(t, header.KindMountReport, rep.Kind)
	assert.Equal(t, "v0.0.1", rep.Metadata["version"])
	assert.Equal(t, 1, rep.Mounted)
	assert.Equal(t, 1, rep.Failed)
	require.Len(t, rep.Components, 1)
	assert.Equal(t, ComponentReport{Name: "greeting", Tag: "div", ID: "hello", State: "mounted"}, rep.Components[0])
	assert.Equal(t, "nonexistent", rep.Failures[0].Name)
	assert.Contains(t, rep.Summary(), "1 mounted, 1 failed")

	var table bytes.Buffer
	require.NoError(t, serializer.NewWriter(serializer.FormatTable, &table).Serialize(context.Background(), rep))
	assert.Contains(t, table.String(), "failed (resolution)")

	res.Ledger.DisposeAll()
	assert.NotContains(t, res.Document.String(), "data-greeting")
	assert.Empty(t, res.Report("", "").Components, "disposed records leave the ledger")
}

func TestHydrateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(`<body><div data-component="greeting"></div></body>`), 0o600))

	res, err := HydrateFile(context.Background(), path, Options{Registry: testRegistry()})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Mounted)

	_, err = HydrateFile(context.Background(), filepath.Join(t.TempDir(), "missing.html"), Options{})
	require.Error(t, err)
}

func TestHydrate_StrictBatchIsNotHidden(t *testing.T) {
	_, err := Hydrate(context.Background(), strings.NewReader(testPage), Options{Registry: testRegistry()})
	var batch *component.BatchError
	assert.False(t, stderrors.As(err, &batch), "strict mode returns the single failure")
}
