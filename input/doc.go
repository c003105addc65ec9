// Package input normalizes host input for the engine.
//
// Two modalities are handled differently:
//
//   - Discrete key events are forwarded verbatim, one engine call per host
//     event, with no buffering or coalescing.
//   - Continuous directional intent (press-and-hold on a control region,
//     by mouse or touch) is kept as two independent flags. The flags are
//     sampled once per simulation tick by Router.Apply, which issues at
//     most one scroll-left and one scroll-right call, in that order.
//
// Router.Reset clears the flags; the session calls it when the page loses
// visibility or focus so no direction stays stuck on.
package input
