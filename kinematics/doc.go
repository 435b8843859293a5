// Package kinematics implements the rotational motion model: gears spinning
// in place, an entity revolving around a moving anchor, the transfer of that
// revolution onto another gear, and the global speed governor.
//
// Everything here is plain value math with no knowledge of entities or
// rendering. Angles are radians, angular velocities radians per second.
package kinematics
