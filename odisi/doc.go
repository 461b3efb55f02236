// Package odisi reads tab-separated exports of a distributed fiber-optic
// strain-sensing instrument and exposes the measurement as a labeled,
// time-indexed channel table.
//
// A [Result] bundles the channel data, the per-column measurement positions
// along the sensor, the parsed header metadata and, for exports carrying a
// gage/segment annotation row, a label index for named retrieval. Results
// come in two flavors behind one type: [New] builds a plain result with no
// labels, [NewWithLabels] a gage-annotated one.
//
// The alignment surface resamples the sensor data onto an external clock
// ([Result.Align] and variants) or an external signal onto the sensor clock
// ([Result.InterpolateSignal] and variants); see the align package for the
// engine itself.
//
// A Result guards its mutable state with one lock: Align takes it exclusively
// while every query takes it shared, so concurrent reads are safe and an
// alignment never interleaves with a read of the same Result.
package odisi
