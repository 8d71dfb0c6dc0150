// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Princeton-CDH/cdhweb-components/pkg/defaults"
)

// CookieName is the cookie carrying per-visitor storage.
const CookieName = "cdh_storage"

// Cookie is a Store scoped to one HTTP exchange. Values are read from the
// request cookie and every mutation re-issues the cookie on the response.
type Cookie struct {
	mu     sync.Mutex
	w      http.ResponseWriter
	values url.Values
	maxAge time.Duration
}

// NewCookie loads storage from r. w may be nil for read-only use.
func NewCookie(r *http.Request, w http.ResponseWriter) *Cookie {
	c := &Cookie{w: w, values: url.Values{}, maxAge: defaults.StorageCookieMaxAge}
	if r == nil {
		return c
	}
	if ck, err := r.Cookie(CookieName); err == nil {
		if v, err := url.ParseQuery(ck.Value); err == nil {
			c.values = v
		}
	}
	return c
}

// Get implements Store.
func (c *Cookie) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.values.Has(key) {
		return "", false
	}
	return c.values.Get(key), true
}

// Set implements Store.
func (c *Cookie) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values.Set(key, value)
	c.write()
	return nil
}

// Delete implements Store.
func (c *Cookie) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.values.Has(key) {
		return nil
	}
	c.values.Del(key)
	c.write()
	return nil
}

func (c *Cookie) write() {
	if c.w == nil {
		return
	}
	h := c.w.Header()
	kept := h.Values("Set-Cookie")[:0:0]
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, CookieName+"=") {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     CookieName,
		Value:    c.values.Encode(),
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
