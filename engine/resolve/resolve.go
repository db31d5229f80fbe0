// Package resolve validates a cast request's target list against the
// ability's targeting mode.
package resolve

import (
	"github.com/nathoo/abilitycore/types"
)

// Rejection messages, recorded verbatim in the trace.
const (
	RejectSelf        = "Error: Self ability requires target to be the caster"
	RejectSingleEnemy = "Error: Single enemy ability can only have one target"
)

// Targets checks req against mode. It returns the empty string when the
// targets are legal, otherwise the rejection line to trace.
//
// Self requires exactly one target equal to the caster. SingleEnemy
// requires exactly one target. SingleAlly has no count check.
func Targets(mode types.TargetMode, req types.ResolveRequest) string {
	switch mode {
	case types.TargetSelf:
		if len(req.Targets) != 1 || req.Targets[0] != req.Caster {
			return RejectSelf
		}
	case types.TargetSingleEnemy:
		if len(req.Targets) != 1 {
			return RejectSingleEnemy
		}
	}
	return ""
}
