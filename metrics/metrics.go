// Copyright 2018 The klaytn Authors
// This file is part of the klaytn library.
//
// The klaytn library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The klaytn library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the klaytn library. If not, see <http://www.gnu.org/licenses/>.

// Package metrics is a thin registration shim over rcrowley/go-metrics, the
// same library the teacher's work/worker.go registers mining counters
// against (timeLimitReachedCounter, tooLongTxCounter). Exporting a metrics
// backend (Prometheus, InfluxDB, ...) is a collaborator concern left out of
// scope; this package only gives the node/* packages a place to register
// and bump counters/timers.
package metrics

import gometrics "github.com/rcrowley/go-metrics"

// Enabled gates registration the way klaytn's metrics.Enabled flag does;
// left on by default since there is no CLI layer here to flip it.
var Enabled = true

func NewRegisteredCounter(name string, r gometrics.Registry) gometrics.Counter {
	if !Enabled {
		return gometrics.NilCounter{}
	}
	if r == nil {
		r = gometrics.DefaultRegistry
	}
	return gometrics.GetOrRegisterCounter(name, r)
}

func NewRegisteredTimer(name string, r gometrics.Registry) gometrics.Timer {
	if !Enabled {
		return gometrics.NilTimer{}
	}
	if r == nil {
		r = gometrics.DefaultRegistry
	}
	return gometrics.GetOrRegisterTimer(name, r)
}

func NewRegisteredGauge(name string, r gometrics.Registry) gometrics.Gauge {
	if !Enabled {
		return gometrics.NilGauge{}
	}
	if r == nil {
		r = gometrics.DefaultRegistry
	}
	return gometrics.GetOrRegisterGauge(name, r)
}
