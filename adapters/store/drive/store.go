package storedrive

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Children-Of-Regions/pdf-service/report"
)

const pdfMimeType = "application/pdf"

// Store uploads finished PDFs to Google Drive. The Drive client is built
// once and reused across requests; its token source caches and refreshes
// credentials internally, last write wins.
type Store struct {
	CredentialsFile string
	DefaultFolderID string

	// ClientOptions are appended to the default client options. They
	// override the endpoint or transport, for tests and proxies.
	ClientOptions []option.ClientOption

	initOnce sync.Once
	service  *drive.Service
	initErr  error
}

// NewStore creates a Drive-backed report store using a service-account
// credentials file.
func NewStore(credentialsFile string) *Store {
	return &Store{CredentialsFile: credentialsFile}
}

// Save uploads the PDF, optionally into a parent folder, and returns the
// created file id and its viewable link.
func (s *Store) Save(ctx context.Context, name, folderID string, pdf []byte) (report.StoredFile, error) {
	if s == nil {
		return report.StoredFile{}, report.NewError(report.KindInternal, "store is nil", nil)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return report.StoredFile{}, report.NewError(report.KindValidation, "file name is required", nil)
	}

	srv, err := s.client(ctx)
	if err != nil {
		return report.StoredFile{}, report.NewError(report.KindStorage, "drive client unavailable", err)
	}

	file := &drive.File{Name: name, MimeType: pdfMimeType}
	if folderID == "" {
		folderID = s.DefaultFolderID
	}
	if folderID != "" {
		file.Parents = []string{folderID}
	}

	created, err := srv.Files.Create(file).
		Media(bytes.NewReader(pdf), googleapi.ContentType(pdfMimeType)).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return report.StoredFile{}, report.NewError(report.KindStorage, "drive upload failed", err)
	}

	return report.StoredFile{
		FileName: name,
		FileID:   created.Id,
		ViewLink: created.WebViewLink,
	}, nil
}

func (s *Store) client(ctx context.Context) (*drive.Service, error) {
	s.initOnce.Do(func() {
		opts := []option.ClientOption{option.WithScopes(drive.DriveFileScope)}
		if s.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(s.CredentialsFile))
		}
		opts = append(opts, s.ClientOptions...)
		// The service outlives the request that first built it.
		s.service, s.initErr = drive.NewService(context.WithoutCancel(ctx), opts...)
	})
	return s.service, s.initErr
}
