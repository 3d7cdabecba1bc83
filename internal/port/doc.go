// Package port defines the typed, directional value slots through which
// components exchange signals.
//
// A Port never changes its Kind or Direction after creation. Its value is
// always finite: writes of NaN or ±Inf are stored as zero.
package port
