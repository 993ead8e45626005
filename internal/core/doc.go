// Package core implements the aggregation-and-normalization pipeline for
// the risk dashboard: the cursor-driven pagination loop with safety bounds,
// normalization of variable upstream risk schemas into canonical records,
// custom-field canonicalization, the sort/filter query engine, and CSV
// rendering of the resulting view.
//
// This package has no HTTP or UI dependencies. Everything here is a pure
// function of explicit inputs except the Aggregator, which drives the
// upstream page fetcher it is constructed with. Nothing reads the
// environment and nothing is cached between fetch sessions.
package core
