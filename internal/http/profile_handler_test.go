package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-chat/internal/domain"
	"hospital-chat/internal/profile"
	"hospital-chat/internal/repository"
)

type saveFailRepo struct {
	inner *repository.MemoryProfileRepository
}

func (r *saveFailRepo) Load(ctx context.Context) (domain.Profile, error) {
	return r.inner.Load(ctx)
}

func (r *saveFailRepo) Save(context.Context, domain.Profile) error {
	return errors.New("disk full")
}

func newProfileRouter(repo repository.ProfileRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	store := profile.NewStore(logger, repo)
	store.Load(context.Background())
	profileH := NewProfileHandler(logger, store)
	return NewRouter(logger, profileH, NewChatHandler(logger, nil))
}

type profilePayload struct {
	Profile struct {
		ID     string        `json:"id"`
		Name   string        `json:"name"`
		Accent domain.Accent `json:"accent"`
		Avatar string        `json:"avatar"`
	} `json:"profile"`
	Warning string `json:"warning"`
}

func TestGetProfileDefaults(t *testing.T) {
	router := newProfileRouter(repository.NewMemoryProfileRepository())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp profilePayload
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Profile.Name != domain.DefaultProfileName {
		t.Fatalf("expected default name, got %q", resp.Profile.Name)
	}
	if resp.Profile.Avatar == "" {
		t.Fatalf("expected derived avatar in response")
	}
}

func TestPatchProfileNameRederivesAvatar(t *testing.T) {
	router := newProfileRouter(repository.NewMemoryProfileRepository())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/profile", bytes.NewBufferString(`{"name":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp profilePayload
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Profile.Name != "Ada" {
		t.Fatalf("expected updated name, got %q", resp.Profile.Name)
	}
	if !strings.Contains(resp.Profile.Avatar, "name=Ada") {
		t.Fatalf("expected avatar re-derived from new name, got %q", resp.Profile.Avatar)
	}
	if resp.Warning != "" {
		t.Fatalf("unexpected warning %q", resp.Warning)
	}
}

func TestPatchProfileAccentOutOfRange(t *testing.T) {
	router := newProfileRouter(repository.NewMemoryProfileRepository())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/profile", bytes.NewBufferString(`{"accent":99}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPatchProfileEmptyBody(t *testing.T) {
	router := newProfileRouter(repository.NewMemoryProfileRepository())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/profile", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPatchProfilePersistFailureWarns(t *testing.T) {
	router := newProfileRouter(&saveFailRepo{inner: repository.NewMemoryProfileRepository()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/profile", bytes.NewBufferString(`{"name":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with warning, got %d", rec.Code)
	}
	var resp profilePayload
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Warning == "" {
		t.Fatalf("expected persistence warning in response")
	}
	if resp.Profile.Name != "Ada" {
		t.Fatalf("expected in-memory update reflected, got %q", resp.Profile.Name)
	}
}

func TestListAccents(t *testing.T) {
	router := newProfileRouter(repository.NewMemoryProfileRepository())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/accents", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Accents []domain.Accent `json:"accents"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Accents) != domain.PaletteSize() {
		t.Fatalf("expected full palette, got %d", len(resp.Accents))
	}
}
