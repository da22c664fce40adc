// Package captions derives subtitle timing from narration segments and
// timeline markers, validates the result, and serializes SRT/WebVTT.
//
// Timing derivation mirrors audio placement (anchor time + offset, end at
// start + audio duration) but degrades gracefully: a segment whose audio or
// anchor is missing is skipped with a reason instead of failing the batch.
// Validation only reports; it never repairs timing. After a trim or gap
// speed-up, AdjustForEdits re-expresses every caption on the edited timeline
// and returns new entries, leaving the originals untouched.
package captions
