// Package domain models reported UFO sighting data and the aggregations the
// dashboard charts are built from.
//
// # Data Source
//
// Sightings come from a transformed export of the NUFORC sighting reports
// (ufo-sightings-transformed.csv). Each row is a flat set of string columns;
// nothing about a row is guaranteed: dates may be malformed, coordinates may be
// blank or out of range, and free-text fields may be empty.
//
// # Columns
//
//	Date_time                    "1949-10-10 20:30:00", wall-clock time of the sighting
//	Season                       Spring | Summer | Fall | Winter (may be blank)
//	Country_Code                 ISO-3166 alpha-3, e.g. "USA"
//	Country, Region, Locale      free-text place names
//	latitude, longitude          decimal degrees (WGS-84)
//	UFO_shape                    category label, e.g. "Circle", "Disk"
//	length_of_encounter_seconds  numeric duration
//	Encounter_Duration           the duration as reported, e.g. "45 minutes"
//	Description                  free-text witness summary
//	Hour                         hour column precomputed by the export
//
// # Normalization
//
// Normalization is total: every raw row yields exactly one [SightingRecord].
// Unparseable timestamps become the zero [time.Time]; unparseable or infinite
// numbers become NaN. Downstream stages never see a parse error, only values
// they must guard (see [SightingRecord.HasTimestamp] and [ValidCoordinates]).
//
// # Calendar Conventions
//
// Weekdays are Sunday-origin (index 0 = Sunday). Seasons are meteorological,
// northern-hemisphere, month based:
//
//	March-May           Spring
//	June-August         Summer
//	September-November  Fall
//	December-February   Winter
//
// A Season column that already holds one of the four names wins over the
// derived value.
//
// # Aggregation
//
// [Aggregate] groups records by a key function and counts members, keeping
// first-seen key order. Fixed-domain dimensions (weekday, hour, season) are
// read back through a canonical domain so every key is present even at zero;
// the year dimension is sparse and only emits observed years.
package domain
