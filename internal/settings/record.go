// Package settings owns the persisted configuration record and the
// in-memory draft the operator edits through field-level checks. Applying a
// draft drives the whole configuration path: endpoint resolution, remote
// validation, backend build, singleton registration, then persistence.
package settings

import (
	"fmt"
	"os"

	"github.com/cistack/artifactstore/internal/backend"
	"github.com/cistack/artifactstore/internal/bucketsvc"
	"github.com/cistack/artifactstore/internal/secret"
	"go.yaml.in/yaml/v3"
)

// Record is the settings blob written to disk. SecretKey is stored in its
// opaque at-rest form, never as plaintext.
type Record struct {
	AccessKey         string `yaml:"accessKey" json:"accessKey"`
	SecretKey         string `yaml:"secretKey" json:"secretKey,omitempty"`
	BucketName        string `yaml:"bucketName" json:"bucketName"`
	ObjectNamePrefix  string `yaml:"objectNamePrefix" json:"objectNamePrefix"`
	DownloadDomain    string `yaml:"downloadDomain" json:"downloadDomain"`
	APIDomain         string `yaml:"apiDomain" json:"apiDomain"`
	MetadataDomain    string `yaml:"metadataDomain" json:"metadataDomain"`
	LookupDomain      string `yaml:"lookupDomain" json:"lookupDomain"`
	UseHTTPS          bool   `yaml:"useHTTPS" json:"useHTTPS"`
	InfrequentStorage bool   `yaml:"infrequentStorage" json:"infrequentStorage"`
}

// Load reads the record at path. A missing file is a fresh install, not an
// error: it yields the zero record.
func Load(path string) (*Record, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings record: %w", err)
	}

	var rec Record
	if err := yaml.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("parsing settings record: %w", err)
	}
	return &rec, nil
}

// Save writes the record to path, replacing any previous content. The file
// is private to the host: it carries the encoded secret.
func (r *Record) Save(path string) error {
	raw, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding settings record: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("writing settings record: %w", err)
	}
	return nil
}

// Credentials decodes the record's credential fields.
func (r *Record) Credentials() backend.CredentialSet {
	return backend.CredentialSet{
		AccessKey:  r.AccessKey,
		SecretKey:  secret.Decode(r.SecretKey),
		BucketName: r.BucketName,
	}
}

// Endpoints maps the record's domain fields onto an endpoint set.
func (r *Record) Endpoints() bucketsvc.Endpoints {
	return bucketsvc.Endpoints{
		API:      r.APIDomain,
		Metadata: r.MetadataDomain,
		Lookup:   r.LookupDomain,
		Download: r.DownloadDomain,
		UseHTTPS: r.UseHTTPS,
	}
}
