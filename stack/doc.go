// Package stack resolves the stack level at which a deprecation warning is
// reported.
//
// Every wrapper in housekeeping sits between the genuine call site and the
// point where the warning is dispatched. The level passed around is the
// number of frames to climb, counted the way the dispatcher counts them:
//   - level 1 is the function calling the dispatcher
//   - level 2 is that function's caller, and so on
//
// Frames of trampoline packages (runtime, reflect, fmt, sync) are never counted,
// and frames of internal packages are skipped once the requested level has
// been reached, so nested wrapping layers keep pointing at user code.
package stack
