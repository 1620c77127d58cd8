// Package automation moves parameter curves from a parent group into the
// child groups placed inside it.
//
// A child group reference sitting inside the parent covers a window of the
// parent's timeline. Packing transfers the parent's control points in that
// window into the child, summed onto whatever the child already carries, and
// leaves the parent flat at the default across the window so the audible
// result is unchanged.
package automation
