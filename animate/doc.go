/*
Package animate drives style properties of UI elements from an old value to a
new value over time.

An Animation owns one animated property per PropKind. Targets arrive through
driving closures registered with a reactive Runtime: every time a closure is
re-evaluated its result is pushed onto the Engine's Queue, and the Animation
picks it up on its next Advance. Callers advance every live Animation once per
frame and then read CurrentValue for the kinds they paint, gated by
ShouldApply.

Nothing in this package is safe for concurrent use except NextID. Animations,
the Queue and the Runtime belong to the goroutine that runs the frame loop.
*/
package animate
