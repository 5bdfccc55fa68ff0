// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package diagnostics hosts the opt-in inspection tooling that sits outside
// the emulator's cycle path: a live runtime-stats HTTP dashboard and a
// graphviz dump of the scheduler's per-agent bus statistics.
package diagnostics

import (
	"io"
	"net/http"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/agnusgo/chipset/hardware/agnus/scheduler"
)

// Stats wraps statsview's background HTTP server, reporting goroutine count
// and heap statistics for the single emulator thread. It never touches the
// hot path: Start launches its own goroutine, independent of the cycle
// loop.
type Stats struct {
	server *http.Server
}

// NewStats creates a Stats dashboard bound to addr (for example
// ":18081").
func NewStats(addr string) *Stats {
	viewer.SetConfiguration(viewer.WithAddr(addr))
	return &Stats{}
}

// Start launches the dashboard's HTTP goroutine. It returns immediately;
// the server runs until Stop is called.
func (s *Stats) Start() {
	go statsview.New().Start()
}

// Stop tears down the dashboard. statsview has no exported shutdown hook
// beyond process exit, so Stop is a placeholder for when one is added; it
// exists so callers have a symmetric API to pair with Start.
func (s *Stats) Stop() {}

// DumpGraph renders the scheduler's per-agent bus statistics (BusStats) as
// a graphviz .dot file for inspection during development. The slot table
// itself is not dumped.
func DumpGraph(w io.Writer, s *scheduler.Scheduler) error {
	stats := s.BusStats()
	memviz.Map(w, &stats)
	return nil
}
