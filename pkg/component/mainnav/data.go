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

package mainnav

import (
	"encoding/json"

	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

const (
	// PrimaryDataID is the id of the script element holding primary nav JSON.
	PrimaryDataID = "navigation-data-primary"

	// SecondaryDataID is the id of the script element holding secondary nav JSON.
	SecondaryDataID = "navigation-data-secondary"
)

// NavItem is a single link.
type NavItem struct {
	Title   string `json:"title" yaml:"title"`
	LinkURL string `json:"link_url" yaml:"link_url"`
}

// PrimaryItem is a top-level menu entry with its second-level links.
type PrimaryItem struct {
	Title     string    `json:"title" yaml:"title"`
	Overview  string    `json:"overview" yaml:"overview"`
	LinkURL   string    `json:"link_url" yaml:"link_url"`
	L2Items   []NavItem `json:"l2_items" yaml:"l2_items"`
	IsCurrent bool      `json:"is_current" yaml:"is_current"`
	IsSearch  bool      `json:"-" yaml:"-"`
}

// Secondary is the utility menu shown beside the primary one.
type Secondary struct {
	Items []NavItem `json:"items" yaml:"items"`
	CTA   []NavItem `json:"cta,omitempty" yaml:"cta,omitempty"`
}

type primaryPayload struct {
	PrimaryNavData struct {
		PrimaryNav struct {
			L1MenuItems []PrimaryItem `json:"l1_menu_items"`
		} `json:"primary_nav"`
	} `json:"primary_nav_data"`
}

type secondaryPayload struct {
	SecondaryNavData struct {
		SecondaryNav Secondary `json:"secondary_nav"`
	} `json:"secondary_nav_data"`
}

// ReadPrimary decodes the primary navigation embedded in doc.
func ReadPrimary(doc *dom.Document) ([]PrimaryItem, error) {
	var p primaryPayload
	if err := readPayload(doc, PrimaryDataID, &p); err != nil {
		return nil, err
	}
	return p.PrimaryNavData.PrimaryNav.L1MenuItems, nil
}

// ReadSecondary decodes the secondary navigation embedded in doc.
func ReadSecondary(doc *dom.Document) (Secondary, error) {
	var p secondaryPayload
	if err := readPayload(doc, SecondaryDataID, &p); err != nil {
		return Secondary{}, err
	}
	return p.SecondaryNavData.SecondaryNav, nil
}

func readPayload(doc *dom.Document, id string, v any) error {
	el := doc.GetElementByID(id)
	if el == nil {
		return errors.NewWithContext(errors.ErrCodeNotFound,
			"expected navigation data for main nav",
			map[string]any{"id": id})
	}
	if err := json.Unmarshal([]byte(el.Text()), v); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"malformed navigation data", err,
			map[string]any{"id": id})
	}
	return nil
}
