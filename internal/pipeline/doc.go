// Package pipeline assembles and runs report pipelines.
//
// A pipeline run is always the same fixed sequence: generate the report
// content from a payload, render it into an output format, deliver the
// rendered report through a channel. The Builder collects the four
// ingredients (generator, formatter, delivery strategy, payload) through a
// fluent API, validates completeness, and executes the sequence exactly once
// per instance.
//
// Design decision: We use a single-use builder instead of a plain function
// taking four arguments because:
// 1. Partial configuration is a first-class state; callers wire slots from
// different places (CLI flags, config defaults, registries) before running
// 2. Completeness can be validated in one place, reporting every missing
// slot at once instead of failing on the first nil dereference
// 3. Reuse of a consumed builder almost always indicates a lost-payload bug
// in the caller, so Build refuses it and Reset makes intent explicit
// 4. The fixed stage order stays in exactly one place
//
// History recording is deliberately not part of the pipeline. The
// orchestrating service owns the ledger so that a failed delivery can be
// recorded or skipped by policy rather than by stage code.
//
// The package also provides a BatchRunner that executes many report requests
// through one run function with bounded concurrency using errgroup,
// collecting per-request results without aborting sibling runs.
package pipeline
