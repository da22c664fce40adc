// Package request reads and writes demo request files.
//
// A request file is the YAML description of one demo video: the recording
// it narrates, the narration segments with their marker anchors, optional
// conditional fillers, and per-run editing overrides. Requests either spell
// out their segments inline or reference a built-in template with
// placeholder overrides.
package request
