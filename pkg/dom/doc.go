// Package dom provides the document capability the component system mounts
// against: an HTML node tree parsed with golang.org/x/net/html, element
// helpers mirroring the browser DOM calls the widgets rely on (attribute and
// class manipulation, ancestor walks, attribute queries, fragment insertion),
// DOM-style event dispatch, and the per-document storage and location
// capabilities.
//
// # Concurrency
//
// A Document serializes tree access with a read/write lock. Every exported
// Element method acquires it for the duration of one call, so implementations
// mounting into disjoint containers on separate goroutines never race on the
// shared tree. Event listeners run without the lock held and may mutate the
// tree freely.
//
// # Usage
//
//	doc, err := dom.ParseString(markup, dom.WithStorage(storage.NewMemory()))
//	if err != nil {
//	    return err
//	}
//	for _, el := range doc.Body().QueryAll(dom.HasAttr("data-component")) {
//	    name, _ := el.Attr("data-component")
//	    ...
//	}
package dom
