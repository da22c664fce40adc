// Package preflight provides readiness checks for the tools, paths, and
// services a demo render depends on.
//
// These checks run in two contexts:
//   - The pipeline calls RunAll before starting a run. If any check fails,
//     the run halts early instead of wasting minutes on a doomed render.
//   - The CLI "demoreel status" command uses individual check functions
//     (CheckTTS, CheckDirectoryAccess) to display environment health.
package preflight
