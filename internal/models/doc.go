// Package models defines domain entities and data transfer objects for the shelfsync collection service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs carrying remote catalog data
//   - [Thing] : One normalized BoardGameGeek catalog entry
//   - [ImportSummary] : Counts reported after an import run
//   - [TierUpdate] : One tier/rank assignment within a reorder
//
// 2. Persistent Entities: Database-backed records managed by internal/repositories
//   - [Game] : A shelf entry, hand-entered or linked to a BGG id
//   - [ImportRun] : One import invocation with its outcome
//
// Persistent entities carry store-assigned ids and timestamps; repositories
// populate them on create and never mutate CreatedAt afterwards.
package models
