// Package backend provides the HTTP client for the Essence Recognizer API.
//
// # Overview
//
// The backend is a local FastAPI process serving JSON. This package is the only
// place that knows endpoint paths and payload shapes; everything above it works
// with the typed values defined here.
//
// # Endpoints
//
//   - GET /api/scanning_status      → ScanningStatus
//   - GET /api/version              → JSON string (or null)
//   - GET /api/static/weapons       → []Weapon
//   - GET /api/static/weapon_types  → []WeaponType
//   - GET /api/static/essences      → []Essence
//   - GET /api/static/rarity_colors → map[int]string
//   - GET <release url>?t=<ms>      → ReleaseInfo (external static host)
//
// # Validation
//
// Every payload type implements json.Unmarshaler and validates at the
// boundary. Missing required fields, wrong types, unknown essence types,
// non-integer rarity keys and unparseable colors all fail with an error that
// wraps ErrShape:
//
//	weapons, err := client.FetchWeapons(ctx)
//	if errors.Is(err, backend.ErrShape) {
//		// the backend answered, but not with something we understand
//	}
//
// Field names are accepted in snake_case or in the camelCase the backend's
// serialiser emits (iconUrl, weaponTypes, tagName, ...).
//
// # Error Handling
//
//   - Transport failures: "execute request: ..." (wrapped)
//   - HTTP status >= 400: "api <path> returned status <n>"
//   - Malformed JSON or shape mismatch: "decode <path>: ..." (wraps ErrShape
//     for shape failures)
//
// # Interfaces
//
// StatusFetcher, StaticDataFetcher and VersionFetcher split the client by
// consumer so the polling controller, static data cache and update checker can
// be tested against small fakes.
package backend
