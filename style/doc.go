// Package style calculates the dashes of road markings from trajectories.
/*
A marking is rendered as a sequence of short rectangles ("dashes") laid out
along a cubic trajectory. Solid lines are approximated by subdividing the
trajectory until every piece is short and straight enough for a single dash.
Dashed lines are laid out by a spacing solver which balances the gaps at
both ends of the trajectory. Double lines place two parallel tracks at a
lateral offset.

Styles are values. A style is one of Solid, Dashed, DoubleSolid,
DoubleDashed or SolidAndDashed, each holding only the parameters it needs.
Parameters are checked by Validate before a style is used; the calculation
itself never fails: degenerate trajectories yield no dashes.

	for dash := range style.DefaultEngine.Calculate(s, trajectory) {
	    draw(dash)
	}

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'style'
func tracer() tracing.Trace {
	return tracing.Select("style")
}
