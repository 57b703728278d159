// Package domain models coastal sensor observations.
//
// # Data Source
//
// Samples arrive from two paths: real sensor gateways POSTing to the HTTP API,
// and the built-in dummy generator that synthesizes a bounded random walk when
// no hardware is attached. Both paths store the same shape: a sea level reading
// in centimeters and a wind speed reading in m/s, stamped with a UTC timestamp.
//
// # Physical Bounds
//
// Generated and forecast values are clamped to the instrument ranges:
//
//	sea level:  50–250 cm
//	wind speed: 1–25 m/s
//
// Externally POSTed readings are stored as-is. The devices are trusted to send
// calibrated values, and clamping real data would hide sensor faults.
//
// # Status Classification
//
// Each metric maps to a three-level severity via fixed operational thresholds:
//
//	sea level:  <120 Normal | 120–180 Warning | >180 Danger
//	wind speed: <10 Normal  | 10–18 Warning   | >18 Danger
//
// The overall status is the more severe of the two. Thresholds are part of the
// dashboard contract; changing them changes what downstream alerting sees.
package domain
