// Package enhancement applies polymer corrections to a classical graviton
// field configuration.
//
// The correction is a pair of fixed scalar multipliers: sinc(pi*mu) for the
// polymer scale mu, and gamma/(1+gamma^2) for the Immirzi-like parameter
// gamma. The calculator reports two distinct reduction figures: the
// theoretical one (nominal constant scaled by the sinc factor, the headline
// number) and the measured one (ratio of input to output magnitude). The
// two are not reconciled and callers must not assume they agree.
package enhancement
