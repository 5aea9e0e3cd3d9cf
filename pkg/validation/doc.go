// Package validation classifies a field metrics snapshot against the active
// safety profile.
//
// # Checks
//
// Validate runs four independent checks, each appending a violation on
// failure:
//
//  1. Field strength over the profile limit: violation; emergency when the
//     ratio exceeds 10x.
//  2. Energy density over the profile limit: violation only.
//  3. Positive energy compliance below requirement: violation, biological
//     protection revoked, emergency.
//  4. Causality preservation below threshold: violation, emergency.
//
// CheckCritical runs the narrower emergency-watch predicate set used by the
// 1ms monitor task.
//
// # Thread safety
//
// The Validator holds only immutable constraints and can be used
// concurrently from multiple goroutines.
package validation
