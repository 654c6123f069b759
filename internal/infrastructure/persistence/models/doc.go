// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel)
// - agro.go: Registry models (Producer, Property, Crop)
//
// The schema itself is owned by the SQL migrations; the gorm tags here only
// describe it so queries, preloads and the sqlite test store line up.
package models
