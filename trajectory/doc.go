// Package trajectory constructs the cubic curves connecting two anchor points.
/*

A marking line leaves its start point in the direction the start point
prescribes and arrives at its end point in the direction the end point
prescribes. Finding the two inner control points of such a curve is the
problem John Hobby solved for MetaFont: given the end points, the end
directions and the tensions, his formulas yield aesthetically pleasing
control points without any further input. The primary source is:

   Smooth, Easy to Compute Interpolating Splines -- John D. Hobby
   Computer Science Dept. Stanford University
   Report No. STAN-CS-85-1047, Jan 1985
   http://i.stanford.edu/pub/cstr/reports/cs/tr/85/1047/CS-TR-85-1047.pdf

For a path with two knots and explicit directions at both knots no system
of equations has to be solved; the turning angles θ and φ are given by the
directions, and control points follow directly from the velocity function.

Curves are constructed on the ground plane. Heights of handles are
interpolated linearly between the heights of the end points.

Usage

   c, err := trajectory.Connect(
       trajectory.Knot{Position: p, Direction: dp},
       trajectory.Knot{Position: q, Direction: dq}, 1.0)

Stop lines are straight, see Straight.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package trajectory
