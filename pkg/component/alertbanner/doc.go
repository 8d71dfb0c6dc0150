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

// Package alertbanner implements the dismissible site-wide alert banner.
//
// The banner is rendered hidden (class "u-hidden") and carries the alert
// identifier in data-alert-id. On mount the banner is revealed unless the
// page storage already holds that identifier. Clicking the first button in
// the banner hides it again and records the identifier, so a dismissed
// alert stays hidden on later pages.
//
//	<div class="u-hidden" data-component="alert-banner" data-alert-id="promo1">
//	  <p>Applications are open.</p>
//	  <button type="button">Dismiss</button>
//	</div>
package alertbanner
