// Package spectrum computes the one-sided amplitude spectrum of a strain
// channel, for identifying cyclic loading components in a measurement.
//
// The samples are Hann-windowed, zero-padded to a power of two, transformed
// with algo-fft and converted to amplitude-calibrated magnitude bins: a pure
// sinusoid of amplitude A shows a peak of roughly A at its frequency.
//
// The channel must be free of NaN rows; align with clipping (or slice the
// covered range) before analyzing a resampled channel.
package spectrum
