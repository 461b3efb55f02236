// Package stats computes single-pass statistics over one strain channel.
//
// Strain histories routinely contain NaN rows after alignment (timestamps
// outside the recorded span interpolate to missing), so every statistic here
// is computed over the finite samples only and the NaN count is reported
// alongside.
package stats
