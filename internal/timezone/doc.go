// Package timezone provides timezone-aware time operations backed by the
// IANA database: current time lookup, conversion between zones, zone
// metadata with DST transitions, and zone listings filtered by country
// or region.
//
// Zone names are resolved through time.LoadLocation with the embedded
// tzdata as a fallback, so lookups work even on hosts without a system
// zoneinfo directory. Listings and country attribution come from the
// zone1970.tab file shipped with the system database.
package timezone
