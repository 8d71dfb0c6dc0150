package selectnav

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
)

func optionLabels(el *dom.Element) []string {
	var out []string
	for _, opt := range el.QueryAll(dom.Tag("option")) {
		out = append(out, strings.TrimSpace(opt.Text()))
	}
	return out
}

func TestInit_NavigatesOnChange(t *testing.T) {
	doc, err := dom.ParseString(`<body>
	  <div id="nav" data-component="select-navigator">
	    <select>
	      <option value="">Choose a year</option>
	      <option value="2023" data-href="/events/2023/">2023</option>
	      <option value="2024" data-href="/events/2024/">2024</option>
	      <option value="none">No link</option>
	    </select>
	  </div>
	</body>`)
	require.NoError(t, err)
	nav := doc.GetElementByID("nav")

	dispose, err := Init(context.Background(), nav, nil)
	require.NoError(t, err)

	sel := nav.Query(dom.Tag("select"))
	sel.Dispatch(dom.NewEvent("change", "2024"))
	assert.Equal(t, "/events/2024/", doc.Location())

	// An option without data-href leaves the location alone.
	sel.Dispatch(dom.NewEvent("change", "none"))
	assert.Equal(t, "/events/2024/", doc.Location())

	dispose()
	sel.Dispatch(dom.NewEvent("change", "2023"))
	assert.Equal(t, "/events/2024/", doc.Location())
}

func TestInit_UsesSelectedAttribute(t *testing.T) {
	doc, err := dom.ParseString(`<body><select id="nav">
	  <option data-href="/a/">A</option>
	  <option data-href="/b/">B</option>
	</select></body>`)
	require.NoError(t, err)
	nav := doc.GetElementByID("nav")

	_, err = Init(context.Background(), nav, nil)
	require.NoError(t, err)

	nav.QueryAll(dom.Tag("option"))[1].SetAttr("selected", "")
	nav.Dispatch(dom.NewEvent("change", nil))
	assert.Equal(t, "/b/", doc.Location())

	// Selecting by label when options have no value.
	nav.Dispatch(dom.NewEvent("change", "A"))
	assert.Equal(t, "/a/", doc.Location())
	assert.True(t, nav.QueryAll(dom.Tag("option"))[0].HasAttr("selected"))
	assert.False(t, nav.QueryAll(dom.Tag("option"))[1].HasAttr("selected"))
}

func TestInit_NoOptions(t *testing.T) {
	doc, err := dom.ParseString(`<body><div id="nav"></div></body>`)
	require.NoError(t, err)
	nav := doc.GetElementByID("nav")

	dispose, err := Init(context.Background(), nav, nil)
	require.NoError(t, err)
	require.NotNil(t, dispose)
	assert.Equal(t, 0, nav.ListenerCount("change"))
}

func TestInit_Sorts(t *testing.T) {
	doc, err := dom.ParseString(`<html lang="en"><body><select id="nav" data-sort="true">
	  <option value="">Pick one</option>
	  <option value="z">zebra</option>
	  <option value="e">Émile</option>
	  <option value="a">apple</option>
	</select></body></html>`)
	require.NoError(t, err)
	nav := doc.GetElementByID("nav")

	_, err = Init(context.Background(), nav, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pick one", "apple", "Émile", "zebra"}, optionLabels(nav))
}

func TestPageLanguage(t *testing.T) {
	doc, err := dom.ParseString(`<html lang="sv"><body></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "sv", pageLanguage(doc).String())

	doc, err = dom.ParseString(`<body></body>`)
	require.NoError(t, err)
	assert.Equal(t, language.English.String(), pageLanguage(doc).String())
}
