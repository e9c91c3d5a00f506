// Package models defines the value types shared by the refresh pipeline.
//
// The package contains two categories of types:
//
// 1. Catalog data: immutable records produced by the external providers
//   - [Video] : One playlist or search entry (URL, ID, title, channel)
//   - [Snapshot] : One archived capture of a video page
//
// 2. Resolution outcomes: the tagged union produced once per unavailable video
//   - [Success] : Replacement candidates plus the [Provenance] they were inferred from
//   - [NotArchivedFailure] : No metadata and no archived snapshot
//   - [NoTitleFailure] : Archived, but no usable title could be recovered
//
// [Result] and [Provenance] are sealed interfaces: only the types in this package implement them,
// so a type switch over them is exhaustive.
package models
