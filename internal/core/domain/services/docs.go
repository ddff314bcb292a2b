// Package services contains domain services for driver dispatch.
//
// GeoIndex is the candidate-selection service: it re-verifies the coarse
// results of the store's bounding-box radius query against the exact
// great-circle distance and orders candidates nearest first for fanout.
package services
