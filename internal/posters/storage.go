package posters

import (
	"bytes"
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Storage persists poster image blobs. The repository keeps only the
// blob reference and the public URL.
type Storage interface {
	Upload(ctx context.Context, name, mimeType string, data []byte) (ref, url string, err error)
	Delete(ctx context.Context, ref string) error
}

// DriveStorage stores poster blobs in a Google Drive folder via a
// service account.
type DriveStorage struct {
	client   *drive.Service
	folderID string
}

func NewDriveStorage(ctx context.Context, credentialsPath, folderID string) (*DriveStorage, error) {
	client, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}
	return &DriveStorage{client: client, folderID: folderID}, nil
}

func (s *DriveStorage) Upload(ctx context.Context, name, mimeType string, data []byte) (string, string, error) {
	file := &drive.File{
		Name:     name,
		MimeType: mimeType,
		Parents:  []string{s.folderID},
	}
	created, err := s.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", "", fmt.Errorf("upload to drive: %w", err)
	}

	// Anyone with the link may view; the gallery embeds the URL directly.
	_, err = s.client.Permissions.Create(created.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("share drive file: %w", err)
	}

	url := fmt.Sprintf("https://drive.google.com/uc?id=%s", created.Id)
	return created.Id, url, nil
}

func (s *DriveStorage) Delete(ctx context.Context, ref string) error {
	if err := s.client.Files.Delete(ref).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete drive file: %w", err)
	}
	return nil
}
