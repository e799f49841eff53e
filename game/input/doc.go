// Package input maps raw keyboard keys and on-screen direction controls to
// unit movement vectors and forwards them to a single mover.
//
// Recognized keys are the four arrow keys ("ArrowUp", "ArrowDown",
// "ArrowLeft", "ArrowRight") and the lowercase letters w, a, s, d. Letter
// matching is case-sensitive. Direction controls carry one of the tags
// "up", "down", "left", "right".
//
// Unrecognized keys still dispatch the zero vector; the mover treats that as
// a re-check of the current cell.
package input
