// Package domain models the content of SANDRE Hydrometrie bulletins.
//
// # Data Source
//
// Bulletins are XML documents exchanged between hydrometric agencies. Each
// one carries a scenario header (who sends to whom, when, in which schema
// generation), reference data (intervenants, hydro sites with their stations
// and sensors, alert thresholds, forecast models) and observed or simulated
// data (events, observation series, simulations).
//
// # Entity Codes
//
// Hydro entities are nested and their codes grow with depth:
//
//	site     8 characters   A1234567
//	station 10 characters   A123456701
//	sensor  12 characters   A12345670101
//
// The 1.1 schema references any of them through one untyped code, so the
// kind is recovered from the length. See [InferEntityKind].
//
// # Magnitudes
//
//	"H"  water height (mm)
//	"Q"  flow (l/s)
//
// # Thresholds
//
// A threshold is identified by (site code, threshold code). It owns values
// that apply either to the site itself (usually a flow) or to one of the
// site's stations (usually a height). On the wire a threshold may be split
// across several groups; [Threshold] is the merged aggregate.
//
// # Forecasts
//
// A simulation produces a forecast series. Each point is indexed by its date
// and its variant: a tendency (mean, min, max) or a probability in percent
// (the value has that probability of not being exceeded).
//
// # Event Publication
//
// Event publication codes follow the SANDRE nomenclature. Code 25
// ("archived") only exists in 1.1; later bulletins express archiving with
// an event end date instead. See [PublicationArchived].
package domain
