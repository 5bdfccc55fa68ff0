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

// Package prefs implements a small, dependency-free persistence layer for
// chipset configuration: the Agnus/Denise revision, palette adjustment
// parameters, and sync mode. Values are stored as "key :: value" lines in
// a flat file, one Value implementation per Go type.
package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/agnusgo/chipset/errors"
)

// WarningBoilerPlate is written as a comment at the top of every prefs
// file so a human editing it by hand knows it is machine-managed.
const WarningBoilerPlate = "# generated by the chipset core. edits may be overwritten."

// Value is the payload type accepted by a preference entry's Set method.
// It carries no constraints of its own; each entry type documents what
// concrete types (or strings convertible to them) it accepts.
type Value = interface{}

// entry is something that can be set from, and rendered back to, a string
// representation for storage on disk. Bool, String, Float, Int, and
// Generic all implement it.
type entry interface {
	Set(Value) error
	String() string
}

// Disk associates named entries with a backing file.
type Disk struct {
	filename string
	entries  map[string]entry
}

// NewDisk creates a Disk bound to filename. The file need not exist yet.
func NewDisk(filename string) (*Disk, error) {
	if filename == "" {
		return nil, errors.Errorf(errors.PrefsNoFile, filename)
	}
	return &Disk{filename: filename, entries: make(map[string]entry)}, nil
}

// Add registers a Value under key. Values are loaded/saved in key order.
func (d *Disk) Add(key string, v entry) error {
	if _, ok := d.entries[key]; ok {
		return errors.Errorf(errors.Prefs, fmt.Sprintf("duplicate key %q", key))
	}
	d.entries[key] = v
	return nil
}

// Save writes every registered Value to disk, sorted by key, merging with
// any entries already present in the file under keys we don't manage.
func (d *Disk) Save() error {
	existing := d.readRaw()
	for k, v := range d.entries {
		existing[k] = v.String()
	}

	keys := make([]string, 0, len(existing))
	for k := range existing {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var s strings.Builder
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		fmt.Fprintf(&s, "%s :: %s\n", k, existing[k])
	}

	return os.WriteFile(d.filename, []byte(s.String()), 0o644)
}

// Load reads the backing file and applies matching keys to registered
// Values. Unknown keys are ignored; missing keys leave the Value
// untouched.
func (d *Disk) Load() error {
	raw := d.readRaw()
	for k, v := range d.entries {
		if s, ok := raw[k]; ok {
			if err := v.Set(s); err != nil {
				return errors.Errorf(errors.Prefs, err)
			}
		}
	}
	return nil
}

func (d *Disk) readRaw() map[string]string {
	out := make(map[string]string)

	f, err := os.Open(d.filename)
	if err != nil {
		return out
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "::", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	return out
}

// Bool is a boolean preference value.
type Bool struct {
	v bool
}

func (b *Bool) Set(value Value) error {
	switch v := value.(type) {
	case bool:
		b.v = v
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Errorf(errors.Prefs, err)
		}
		b.v = parsed
	default:
		return errors.Errorf(errors.Prefs, fmt.Sprintf("unsupported type %T for Bool", value))
	}
	return nil
}

func (b *Bool) String() string { return strconv.FormatBool(b.v) }

// Get returns the current boolean value.
func (b *Bool) Get() bool { return b.v }

// String is a string preference value with an optional maximum length.
type String struct {
	v      string
	maxLen int
}

func (s *String) Set(value Value) error {
	str, ok := value.(string)
	if !ok {
		return errors.Errorf(errors.Prefs, fmt.Sprintf("unsupported type %T for String", value))
	}
	if s.maxLen > 0 && len(str) > s.maxLen {
		str = str[:s.maxLen]
	}
	s.v = str
	return nil
}

func (s *String) String() string { return s.v }

// SetMaxLen crops the current and future values to n bytes. A value of
// zero removes the limit without restoring any cropped information.
func (s *String) SetMaxLen(n int) {
	s.maxLen = n
	if n > 0 && len(s.v) > n {
		s.v = s.v[:n]
	}
}

// Float is a floating-point preference value.
type Float struct {
	v float64
}

func (f *Float) Set(value Value) error {
	switch v := value.(type) {
	case float64:
		f.v = v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Errorf(errors.Prefs, err)
		}
		f.v = parsed
	default:
		return errors.Errorf(errors.Prefs, fmt.Sprintf("unsupported type %T for Float", value))
	}
	return nil
}

func (f *Float) String() string { return strconv.FormatFloat(f.v, 'g', -1, 64) }

// Get returns the current float value.
func (f *Float) Get() float64 { return f.v }

// Int is an integer preference value.
type Int struct {
	v int
}

func (n *Int) Set(value Value) error {
	switch v := value.(type) {
	case int:
		n.v = v
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf(errors.Prefs, err)
		}
		n.v = parsed
	default:
		return errors.Errorf(errors.Prefs, fmt.Sprintf("unsupported type %T for Int", value))
	}
	return nil
}

func (n *Int) String() string { return strconv.Itoa(n.v) }

// Get returns the current int value.
func (n *Int) Get() int { return n.v }

// Generic adapts arbitrary set/get closures to the Value interface, for
// preferences whose on-disk representation doesn't map to a primitive.
type Generic struct {
	set func(Value) error
	get func() Value
}

// NewGeneric creates a Generic preference value.
func NewGeneric(set func(Value) error, get func() Value) *Generic {
	return &Generic{set: set, get: get}
}

func (g *Generic) Set(value Value) error {
	return g.set(value)
}

func (g *Generic) String() string {
	v := g.get()
	return fmt.Sprintf("%v", v)
}
