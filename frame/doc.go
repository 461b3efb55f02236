// Package frame provides the time-indexed channel table underlying a
// distributed strain measurement, plus the label index that maps gage and
// segment names onto column positions.
//
// A [Frame] holds one strictly increasing timeline and N numeric channels of
// equal length. Column identity is positional: names are carried for display
// but may repeat across gage and segment boundaries.
//
// All timestamp comparisons in this module are keyed on whole nanosecond
// ticks ([time.Time.UnixNano]), so membership tests after unit conversion are
// exact rather than subject to floating-point drift.
package frame
