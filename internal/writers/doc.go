// Package writers turns parsed hits and GC points into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV/JSON/JSONL).
//   - Parsers and extractors stay domain-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
