// Package align resamples irregularly related time series onto a common
// clock.
//
// The engine follows a union / interpolate / filter procedure: the two
// timelines are merged into one sorted outer union, every channel value
// missing at a merged timestamp is filled by time-weighted linear
// interpolation between its two timestamp-adjacent known neighbors, and the
// merged table is then filtered down to exactly the requested output
// timestamps. Timestamps at the extremes with no bracketing neighbor on one
// side cannot be interpolated and come back as NaN; pass [WithClip] to
// restrict both series to their overlapping range first.
//
// Two entry points share the procedure and differ only in which side the
// filter keeps:
//
//   - [Resample] keeps the target timestamps — the sensor data is moved onto
//     an external clock (e.g. a load cell's).
//   - [Project] keeps the sensor timestamps — an external signal is moved
//     onto the sensor's clock.
//
// Membership tests use whole nanosecond ticks, never floating-point seconds,
// so a timestamp requested in the target is matched exactly in the output.
package align
