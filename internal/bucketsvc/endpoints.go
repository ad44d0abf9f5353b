package bucketsvc

import (
	"net"
	"net/url"
	"strings"
	"sync"

	"github.com/cistack/artifactstore/internal/errs"
)

// Compiled-in provider hosts, used whenever the operator leaves a domain
// field blank.
const (
	DefaultAPIHost      = "api.qiniu.com"
	DefaultMetadataHost = "rs.qbox.me"
	DefaultLookupHost   = "uc.qbox.me"
)

// Endpoints is the set of hosts used to reach the provider. An empty field
// means "use the current process-wide default for that role". Download is
// the public artifact-download domain and has no compiled-in default; it is
// auto-discovered when left blank.
type Endpoints struct {
	API      string
	Metadata string
	Lookup   string
	Download string
	UseHTTPS bool
}

// Validate checks host syntax for every non-empty domain field.
func (e Endpoints) Validate() error {
	for _, d := range []struct {
		field string
		host  string
	}{
		{"apiDomain", e.API},
		{"metadataDomain", e.Metadata},
		{"lookupDomain", e.Lookup},
		{"downloadDomain", e.Download},
	} {
		if d.host == "" {
			continue
		}
		if err := ValidateHost(d.host); err != nil {
			return errs.Wrap(errs.ErrKindMalformedEndpoint, d.field+" is not a valid host", err)
		}
	}
	return nil
}

// ValidateHost checks that host is a syntactically valid hostname or
// host:port, with no scheme, path, or userinfo attached.
func ValidateHost(host string) error {
	u, err := url.Parse("http://" + host)
	if err != nil {
		return err
	}
	if u.Host != host || u.Path != "" || u.User != nil {
		return errs.Newf(errs.ErrKindMalformedEndpoint, "%q is not a bare host", host)
	}
	name := u.Hostname()
	if name == "" || strings.ContainsAny(name, " _") {
		return errs.Newf(errs.ErrKindMalformedEndpoint, "%q is not a bare host", host)
	}
	if ip := net.ParseIP(name); ip != nil {
		return nil
	}
	for _, label := range strings.Split(name, ".") {
		if label == "" {
			return errs.Newf(errs.ErrKindMalformedEndpoint, "%q has an empty label", host)
		}
	}
	return nil
}

// BaseURL prepends the scheme selected by useHTTPS to host. The flag applies
// uniformly to every role.
func BaseURL(host string, useHTTPS bool) string {
	if useHTTPS {
		return "https://" + host
	}
	return "http://" + host
}

// Defaults is the process-wide default-host context shared by all Bucket
// Service calls. The provider's remote client is configured once per
// process, not once per backend instance: a non-default host supplied in
// one configuration submission is promoted and seen by every later call.
// All methods are safe for concurrent use.
type Defaults struct {
	mu       sync.Mutex
	api      string
	metadata string
	lookup   string
}

// NewDefaults returns a Defaults seeded with the compiled-in provider hosts.
func NewDefaults() *Defaults {
	return &Defaults{
		api:      DefaultAPIHost,
		metadata: DefaultMetadataHost,
		lookup:   DefaultLookupHost,
	}
}

// Resolve produces a fully-specified endpoint set from a partially-specified
// one. Empty API/Metadata/Lookup fields are filled from the current
// process-wide defaults; non-empty values that differ from the current
// default are promoted to become the new default for that role (last writer
// wins). Download and UseHTTPS pass through untouched. Resolve never fails.
func (d *Defaults) Resolve(e Endpoints) Endpoints {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.api = promote(e.API, d.api)
	d.metadata = promote(e.Metadata, d.metadata)
	d.lookup = promote(e.Lookup, d.lookup)

	return Endpoints{
		API:      d.api,
		Metadata: d.metadata,
		Lookup:   d.lookup,
		Download: e.Download,
		UseHTTPS: e.UseHTTPS,
	}
}

// Snapshot returns the current default hosts for the api, metadata, and
// lookup roles without promoting anything.
func (d *Defaults) Snapshot() (api, metadata, lookup string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.api, d.metadata, d.lookup
}

func promote(supplied, current string) string {
	if supplied != "" {
		return supplied
	}
	return current
}
