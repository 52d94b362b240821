// Package rsrc implements the RSRC resource-container format used by a
// well-known visual programming environment for its virtual instrument,
// control, and library archive files.
//
// An RSRC file is a self-describing binary container: an index of
// typed, possibly compressed blocks, each split into one or more
// environment-specific sections. The package parses a container
// losslessly into an editable tree, lets callers modify it, and
// re-emits a binary container the original environment accepts.
//
// # File Format Overview
//
// An RSRC file consists of:
//   - A 32-byte header appearing twice, once before the data region and
//     once before the block/section metadata, byte-identical
//   - A data region of size-prefixed section payloads, 4-byte aligned
//   - An info region: blocks info table, per-block section records, and
//     a name table (or, in the oldest layout, a single filename)
//
// Selected payloads are zlib-compressed or XOR-coded; the coding is
// recorded on read and replayed on write.
//
// # Basic Usage
//
// To read a container and turn it into the editable tree:
//
//	c, err := rsrc.Decode(raw)
//	if err != nil { ... }
//	tree, err := rsrc.DecodeTree(c)
//
// To write the (possibly edited) tree back to bytes:
//
//	c, err := rsrc.EncodeTree(tree)
//	if err != nil { ... }
//	raw, err := c.Encode()
//
// # Salvage Policy
//
// Structural violations (bad magic, truncated regions, impossible
// offsets) abort a read. Content anomalies do not: a section that
// fails to inflate or a block tag that is not reverse engineered is
// kept as opaque bytes and recorded as a [Warning], so files that
// stricter tools refuse to open remain readable and re-writable.
//
// # Security Considerations
//
// The package includes built-in protection against oversized
// allocations and decompression bombs via configurable [Limits]. All
// size limits are enforced during decoding.
package rsrc
