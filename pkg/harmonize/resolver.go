package harmonize

import "context"

// NameResolver is the external boundary to the remote taxonomic name
// service (e.g. GBIF's name backbone). eyebold never implements name
// matching itself — it only maps the service's response onto the store via
// HandleResponse.
type NameResolver interface {
	Resolve(ctx context.Context, q Query) (Response, error)
}
