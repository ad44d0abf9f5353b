package backend

import (
	"fmt"
	"strings"

	"github.com/cistack/artifactstore/internal/bucketsvc"
)

// RunID identifies one build run of a host job.
type RunID struct {
	Job    string
	Number int
}

func (r RunID) String() string {
	return fmt.Sprintf("%s#%d", r.Job, r.Number)
}

// ArtifactManager is the per-build-run handle the host uses to address
// artifact storage. Construction performs no I/O: it only binds the run
// identity to the backend config. The archive/retrieve data path belongs to
// the host's artifact subsystem, which consumes the keys and URLs produced
// here.
type ArtifactManager struct {
	run RunID
	cfg *BackendConfig
}

// ForRun binds a build run to this backend configuration.
func (c *BackendConfig) ForRun(run RunID) *ArtifactManager {
	return &ArtifactManager{run: run, cfg: c}
}

// Run returns the bound build-run identity.
func (m *ArtifactManager) Run() RunID {
	return m.run
}

// Config returns the backend configuration the run is bound to.
func (m *ArtifactManager) Config() *BackendConfig {
	return m.cfg
}

// ObjectKey maps an artifact path to its object key in the bucket:
// the configured prefix, the job name, the run number, then the path.
func (m *ArtifactManager) ObjectKey(path string) string {
	key := fmt.Sprintf("%s/%d/%s", m.run.Job, m.run.Number, strings.TrimPrefix(path, "/"))
	return m.cfg.ObjectNamePrefix() + key
}

// DownloadURL builds the public URL for an artifact path on the backend's
// download domain, honoring the UseHTTPS scheme flag.
func (m *ArtifactManager) DownloadURL(path string) string {
	base := bucketsvc.BaseURL(m.cfg.DownloadDomain(), m.cfg.UseHTTPS())
	return base + "/" + m.ObjectKey(path)
}
