package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/cistack/artifactstore/internal/backend"
	"github.com/cistack/artifactstore/internal/bucketsvc"
	"github.com/cistack/artifactstore/internal/errs"
	"github.com/cistack/artifactstore/internal/secret"
	"github.com/cistack/artifactstore/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	infoErr error
	domains []string
}

func (f *fakeService) GetBucketInfo(ctx context.Context, bucket string) (*bucketsvc.BucketInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return &bucketsvc.BucketInfo{Name: bucket}, nil
}

func (f *fakeService) ListBoundDomains(ctx context.Context, bucket string) ([]string, error) {
	return f.domains, nil
}

type fakeList struct {
	entries []any
}

func (l *fakeList) Entries() []any { return l.entries }
func (l *fakeList) Append(e any)   { l.entries = append(l.entries, e) }

func newTestServer(t *testing.T, svc *fakeService) (*Server, *fakeList, *settings.Store) {
	t.Helper()
	build := func(string, secret.Secret, bucketsvc.Endpoints) (bucketsvc.Service, error) {
		return svc, nil
	}
	defaults := bucketsvc.NewDefaults()
	list := &fakeList{}
	store, err := settings.NewStore(filepath.Join(t.TempDir(), "settings.yaml"),
		backend.NewValidator(defaults, build, nil),
		backend.NewFactory(defaults, build, nil),
		backend.NewRegistry(nil),
		list, nil)
	require.NoError(t, err)
	return NewServer(store, nil), list, store
}

func doCheck(t *testing.T, srv *Server, field, value string) checkResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/check/"+field+"?value="+value, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp checkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCheckFieldOK(t *testing.T) {
	srv, _, _ := newTestServer(t, &fakeService{})

	resp := doCheck(t, srv, "access-key", "ak")
	assert.True(t, resp.OK)
	assert.Empty(t, resp.Message)
}

func TestCheckFieldEmptyCredential(t *testing.T) {
	srv, _, _ := newTestServer(t, &fakeService{})

	resp := doCheck(t, srv, "bucket-name", "")
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Message, "bucketName")
}

func TestCheckFieldEmbedsProviderDiagnostic(t *testing.T) {
	svc := &fakeService{}
	srv, _, store := newTestServer(t, svc)
	ctx := context.Background()
	require.NoError(t, store.CheckAccessKey(ctx, "ak"))
	require.NoError(t, store.CheckSecretKey(ctx, "sk"))

	svc.infoErr = errs.Wrap(errs.ErrKindAuthDenied, "bucket info lookup failed",
		errors.New("bad token"))
	resp := doCheck(t, srv, "bucket-name", "artifacts")

	assert.False(t, resp.OK)
	assert.Contains(t, resp.Message, "bad token")
	// The rejected value stays in the draft.
	assert.Equal(t, "artifacts", store.Draft().BucketName)
}

func TestCheckUnknownField(t *testing.T) {
	srv, _, _ := newTestServer(t, &fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/check/no-such-field?value=x", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfigureRegistersBackend(t *testing.T) {
	srv, list, _ := newTestServer(t, &fakeService{domains: []string{"cdn.example.com"}})

	body, _ := json.Marshal(configureRequest{
		AccessKey:  "ak",
		SecretKey:  "sk",
		BucketName: "artifacts",
		UseHTTPS:   true,
	})
	req := httptest.NewRequest(http.MethodPost, "/configure", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, list.entries, 1)
	cfg := list.entries[0].(*backend.Entry).Config()
	assert.Equal(t, "artifacts", cfg.BucketName())
	assert.Equal(t, "cdn.example.com", cfg.DownloadDomain())
	assert.True(t, cfg.UseHTTPS())
}

func TestConfigureFailureRegistersNothing(t *testing.T) {
	srv, list, _ := newTestServer(t, &fakeService{domains: nil})

	body, _ := json.Marshal(configureRequest{
		AccessKey:  "ak",
		SecretKey:  "sk",
		BucketName: "artifacts",
	})
	req := httptest.NewRequest(http.MethodPost, "/configure", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, list.entries)

	var resp checkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "download domain")
}

func TestSettingsRedactsSecret(t *testing.T) {
	srv, _, store := newTestServer(t, &fakeService{})
	require.NoError(t, store.CheckSecretKey(context.Background(), "super-secret"))

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "super-secret")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
