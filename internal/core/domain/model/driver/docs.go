// Package driver provides the Driver aggregate for the dispatch system.
// A driver is a dispatch candidate when on shift, approved, and reporting a
// recent GPS fix; the aggregate owns that eligibility rule and the location
// write path used by the mobile client's position updates.
package driver
