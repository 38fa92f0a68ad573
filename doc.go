// Package goinspect is an interactive inspector for live Go values.
//
// A value is broken into Fields: a key, a value and, where the memory can be
// written, a setter. Fields reference the inspected value itself, so a write
// through a setter is seen by every holder of that value. Inspect runs a
// prompt loop over the fields of a value:
//
//	err := goinspect.Inspect(ctx, &cfg,
//		goinspect.WithStream(os.Stdin, os.Stdout),
//		goinspect.WithEvaluator(ev),
//	)
//
// The operator types a field key (or the [index] shown next to it) to drill
// into a field, "up" to return, "set-field key value" to write, and any other
// input is evaluated as an expression. Command names may be abbreviated to any
// prefix; commands take priority over fields, then declaration order decides.
//
// Design policy:
//   - Keep the public API in the root package; the input grammar lives under
//     internal/, the evaluator under eval/, terminal support under console/ and
//     the CLI under cmd/goinspect.
//   - Extraction and description are registries (Extractors, Describers)
//     keyed by exact type, kind and interface traits, so new value variants
//     register without touching the dispatcher.
//   - Rule and probe failures are recovered and contribute nothing; operator
//     errors are *Problem values that leave the session active.
//
// Pass a pointer to get settable fields: reflection can only write through
// addressable values. Map entries are written with SetMapIndex and are
// settable whenever the map is reachable.
package goinspect
