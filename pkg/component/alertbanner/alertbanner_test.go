package alertbanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
	"github.com/Princeton-CDH/cdhweb-components/pkg/storage"
)

const bannerPage = `<body>
  <div id="banner" class="alert u-hidden" data-component="alert-banner" data-alert-id="promo1">
    <p>Applications are open.</p>
    <button type="button">Dismiss</button>
  </div>
</body>`

func TestInit_RevealsAndDismisses(t *testing.T) {
	store := storage.NewMemory()
	doc, err := dom.ParseString(bannerPage, dom.WithStorage(store))
	require.NoError(t, err)
	banner := doc.GetElementByID("banner")

	dispose, err := Init(context.Background(), banner, nil)
	require.NoError(t, err)
	require.NotNil(t, dispose)
	assert.False(t, banner.HasClass(HiddenClass))
	assert.True(t, banner.HasClass("alert"))

	banner.Query(dom.Tag("button")).Click()
	assert.True(t, banner.HasClass(HiddenClass))
	v, ok := store.Get("promo1")
	assert.True(t, ok)
	assert.Equal(t, "promo1", v)

	before := doc.String()
	dispose()
	assert.Equal(t, before, doc.String(), "disposer leaves the DOM untouched")
}

func TestInit_PreviouslyDismissed(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Set("promo1", "promo1"))
	doc, err := dom.ParseString(bannerPage, dom.WithStorage(store))
	require.NoError(t, err)
	banner := doc.GetElementByID("banner")

	dispose, err := Init(context.Background(), banner, nil)
	require.NoError(t, err)
	require.NotNil(t, dispose)
	assert.True(t, banner.HasClass(HiddenClass))
	assert.Equal(t, 0, banner.Query(dom.Tag("button")).ListenerCount("click"))
}

func TestInit_MissingAlertID(t *testing.T) {
	doc, err := dom.ParseString(`<body><div id="banner" data-component="alert-banner"></div></body>`)
	require.NoError(t, err)

	_, err = Init(context.Background(), doc.GetElementByID("banner"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alert ID")
}

func TestInit_NoButton(t *testing.T) {
	doc, err := dom.ParseString(`<body><div id="banner" class="u-hidden" data-alert-id="x"></div></body>`)
	require.NoError(t, err)
	banner := doc.GetElementByID("banner")

	_, err = Init(context.Background(), banner, nil)
	require.NoError(t, err)
	assert.False(t, banner.HasClass(HiddenClass))
}
