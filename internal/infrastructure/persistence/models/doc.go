// Package models contains the GORM persistence models and their mappings
// to and from the domain aggregates. Persistence concerns (column types,
// indexes, soft deletes) live here so the domain stays storage-agnostic.
package models
