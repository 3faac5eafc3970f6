// Package kernel provides the value objects shared by every part of the fulfillment pipeline.
//
// The package includes:
//   - UUID: identifiers for pipeline runs and tracking records
//   - Location: a dispatch site with its UTC offset and daylight-saving behaviour
//   - DeliveryDate: a civil calendar date, independent of any time zone
//   - DeliveryType: the same-day and next-day delivery lanes
//   - ClockTime: a zero-padded "HH:MM" wall-clock value used by pickup cutoffs
//
// All values are immutable. Zero values are invalid where a constructor exists
// and report that through Validate.
package kernel
