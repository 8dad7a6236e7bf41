// Package ledger turns flat contract records into the grouped, sorted view
// shown on the contracts page: money and date normalization, cost totals,
// renewal countdowns, grouping by application and the sort policies.
//
// Every function is a pure function of its arguments. Nothing here performs
// I/O, logs, or keeps state between calls, so callers may run the pipeline
// concurrently. Bad input is resolved to a sentinel rather than an error.
package ledger
