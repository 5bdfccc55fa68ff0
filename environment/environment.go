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

package environment

import (
	"github.com/agnusgo/chipset/prefs"
)

// Label is used to name the environment.
type Label string

// MainEmulation is the label used for the main emulation. Other labels
// (for example a thumbnailer or a regression harness) are expected to run
// with logging suppressed.
const MainEmulation = Label("main")

// FrameSink reports the chipset revision it was built for and accepts the
// core's interlace setting. It does not receive frame data. Implemented by
// whatever external collaborator owns the display surface.
type FrameSink interface {
	GetRevision() prefs.Revision
	SetInterlace(bool)
}

// Environment provides context for an emulation core. Particularly useful
// when running multiple cores in parallel (for example a live emulation
// alongside a headless regression instance).
type Environment struct {
	// Label distinguishes between different types of emulation (main,
	// thumbnailer, test harness, etc.)
	Label Label

	// the frame sink attached to this core
	Sink FrameSink

	// the core's configuration
	Prefs *prefs.Preferences
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// prefsFilename names the file the environment's preferences persist to.
// It must not be empty: an empty name makes prefs.NewPreferences fail and
// NewEnvironment returns that error.
func NewEnvironment(label Label, sink FrameSink, prefsFilename string) (*Environment, error) {
	p, err := prefs.NewPreferences(prefsFilename)
	if err != nil {
		return nil, err
	}

	return &Environment{
		Label: label,
		Sink:  sink,
		Prefs: p,
	}, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// regression testing where the initial state must be the same for every
// run of the test.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
}

// IsEmulation checks the emulation label and returns true if it matches.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging returns true if the environment is permitted to create new
// log entries. Satisfies logger.Permission.
func (env *Environment) AllowLogging() bool {
	return env.IsEmulation(MainEmulation)
}
