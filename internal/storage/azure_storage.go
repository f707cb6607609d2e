package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"go-crowd-monitor/pkg/validation"
)

// AzureStore serves az://container/blob locations from one storage account
type AzureStore struct {
	client *azblob.Client
}

// NewAzureStore creates an Azure Blob backend using shared key credentials
func NewAzureStore(accountName string, accountKey string) (Backend, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}

	return &AzureStore{client: client}, nil
}

// Open streams the blob body
func (s *AzureStore) Open(ctx context.Context, loc validation.Location) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, loc.Host, loc.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", loc.Raw, err)
	}
	return resp.Body, nil
}

// Write encodes into memory and uploads the blob in a single request, so a
// failed encode or upload never leaves a partial blob.
func (s *AzureStore) Write(ctx context.Context, loc validation.Location, encode EncodeFunc) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return fmt.Errorf("encode %s: %w", loc.Raw, err)
	}
	if _, err := s.client.UploadBuffer(ctx, loc.Host, loc.Path, buf.Bytes(), nil); err != nil {
		return fmt.Errorf("upload %s: %w", loc.Raw, err)
	}
	return nil
}
