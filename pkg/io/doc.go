// Package io provides JSON import and export for resonator stacks.
//
// # Overview
//
// A stack document records a resonator design so it can be rendered again,
// exchanged with other tools, or fed to a layout writer later:
//
//	{
//	  "seed": 42,
//	  "resonators": [
//	    {"size": 100, "frame_width": 5, "gap_size": 8, "gap_side": "top"},
//	    {"size": 85, "frame_width": 4, "gap_size": 6, "gap_side": "left"}
//	  ]
//	}
//
// Resonators are listed outermost first. The gap side is one of "top",
// "bottom", "left" or "right" (case-insensitive on import). The seed and
// truncated fields are optional provenance written by the generator.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to read
// from any io.Reader. A bare array of resonators is accepted as well. Both
// functions validate every resonator and the decreasing size order, so an
// imported stack is always renderable.
//
// # Export
//
// Use [ExportJSON] to write a document to a file, or [WriteJSON] to write to
// any io.Writer. Exported documents re-import unchanged.
package io
