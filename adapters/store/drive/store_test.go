package storedrive

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"

	"github.com/Children-Of-Regions/pdf-service/report"
)

// fakeDrive serves canned Files.Create responses and records what the
// client sent.
type fakeDrive struct {
	server *httptest.Server
	path   string
	body   string
}

func newFakeDrive(t *testing.T) *fakeDrive {
	t.Helper()
	f := &fakeDrive{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read upload body: %v", err)
		}
		f.path = r.URL.Path
		f.body = string(raw)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"file-1","webViewLink":"https://drive.example/file-1"}`))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeDrive) options() []option.ClientOption {
	return []option.ClientOption{
		option.WithEndpoint(f.server.URL),
		option.WithHTTPClient(f.server.Client()),
	}
}

func TestStore_SaveUploadsPDF(t *testing.T) {
	fake := newFakeDrive(t)
	store := NewStore("")
	store.ClientOptions = fake.options()

	stored, err := store.Save(context.Background(), "out.pdf", "folder-9", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if stored.FileID != "file-1" {
		t.Fatalf("expected created file id, got %q", stored.FileID)
	}
	if stored.ViewLink != "https://drive.example/file-1" {
		t.Fatalf("expected view link, got %q", stored.ViewLink)
	}
	if stored.FileName != "out.pdf" {
		t.Fatalf("expected file name, got %q", stored.FileName)
	}

	if !strings.Contains(fake.path, "files") {
		t.Fatalf("expected a files upload request, got path %q", fake.path)
	}
	if !strings.Contains(fake.body, `"out.pdf"`) {
		t.Fatalf("expected file name in metadata, got %q", fake.body)
	}
	if !strings.Contains(fake.body, `"folder-9"`) {
		t.Fatalf("expected parent folder in metadata, got %q", fake.body)
	}
	if !strings.Contains(fake.body, "%PDF-1.4 fake") {
		t.Fatalf("expected pdf payload in upload body")
	}
}

func TestStore_SaveFallsBackToDefaultFolder(t *testing.T) {
	fake := newFakeDrive(t)
	store := NewStore("")
	store.DefaultFolderID = "default-folder"
	store.ClientOptions = fake.options()

	if _, err := store.Save(context.Background(), "out.pdf", "", []byte("%PDF")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(fake.body, `"default-folder"`) {
		t.Fatalf("expected default folder in metadata, got %q", fake.body)
	}
}

func TestStore_SaveWithoutFolderOmitsParents(t *testing.T) {
	fake := newFakeDrive(t)
	store := NewStore("")
	store.ClientOptions = fake.options()

	if _, err := store.Save(context.Background(), "out.pdf", "", []byte("%PDF")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.Contains(fake.body, "parents") {
		t.Fatalf("expected no parents in metadata, got %q", fake.body)
	}
}

func TestStore_SaveRequiresName(t *testing.T) {
	store := NewStore("")
	_, err := store.Save(context.Background(), "   ", "", []byte("x"))
	if report.KindFromError(err) != report.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStore_NilGuard(t *testing.T) {
	var store *Store
	_, err := store.Save(context.Background(), "a.pdf", "", nil)
	if report.KindFromError(err) != report.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}
