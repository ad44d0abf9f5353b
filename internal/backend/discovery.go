package backend

import (
	"context"

	"github.com/cistack/artifactstore/internal/bucketsvc"
	"github.com/cistack/artifactstore/internal/errs"
)

// ResolveDownloadDomain decides the public download domain for bucket.
// A non-empty current value is an explicit operator choice and is returned
// unchanged without any remote call. Otherwise the provider's bound-domain
// listing is consulted: the last entry wins (last-listed is treated as
// most-recently-bound; an arbitrary but deterministic policy), an empty
// listing is a hard NoDownloadDomain error because artifacts could not be
// made retrievable, and a remote failure propagates with no retry.
func ResolveDownloadDomain(ctx context.Context, svc bucketsvc.Service, bucket, current string) (string, error) {
	if current != "" {
		return current, nil
	}

	domains, err := svc.ListBoundDomains(ctx, bucket)
	if err != nil {
		return "", err
	}
	if len(domains) == 0 {
		return "", errs.Newf(errs.ErrKindNoDownloadDomain,
			"bucket %q is not bound with any download domain", bucket)
	}
	return domains[len(domains)-1], nil
}
