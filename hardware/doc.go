// Package hardware is the base package for the Amiga chipset core. Its
// sub-packages contain everything required to run the core headlessly,
// one DMA cycle at a time, alongside an external CPU collaborator.
//
// hardware/vcs.Core is the root of the core and holds references to
// every chipset sub-system: the beam clock and bus scheduler in
// hardware/agnus, the pixel pipeline in hardware/denise. It is driven
// from the outside one DMA cycle at a time through Core.TickDMA; it
// never owns its own goroutine.
package hardware

