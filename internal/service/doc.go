// Package service contains the family tree use cases. It orchestrates the
// record store (internal/store) and the pure domain packages (calendar and
// family) to fulfil API and CLI requests.
//
// Key responsibilities:
//
// 1. Enrichment:
//   - Every read takes a single List snapshot and derives relatives and the
//     next birthday from it
//   - Dates that cannot be resolved degrade to "unknown" instead of failing
//
// 2. Mutations spanning records:
//   - Spouse links are kept symmetric and cascade-clear on delete runs in one
//     store transaction (store.PersonStore.WithinTx)
//
// 3. Error Handling:
//   - Store errors are translated to service sentinels (ErrPersonNotFound,
//     ErrSpouseTaken) or wrapped in PersonServiceError
//   - Domain validation errors pass through for the API layer to map
//
// The service depends on the store interface only, never on a specific
// implementation.
package service
