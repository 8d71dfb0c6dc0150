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

package component

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultMounted = "mounted"
	resultFailed  = "failed"
)

var (
	mountsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdh_component_mounts_total",
			Help: "Total number of component mount attempts by result",
		},
		[]string{"component", "result"},
	)

	mountDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cdh_component_mount_duration_seconds",
			Help:    "Time spent loading and initializing a component",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"component"},
	)

	loaderInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdh_component_loader_invocations_total",
			Help: "Total number of deferred component loader invocations",
		},
		[]string{"component"},
	)

	disposalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cdh_component_disposals_total",
			Help: "Total number of disposers invoked",
		},
	)
)
