// Package upload issues V4 signed URLs so browsers can PUT images straight to
// Cloud Storage. Signing goes through the IAM Credentials API, so no private
// key has to live on the server.
package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	credentialspb "cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"
)

const (
	defaultExpiry = 15 * time.Minute
	maxExpiry     = time.Hour
)

var (
	ErrNotConfigured = errors.New("uploads are not configured")
	ErrBadRequest    = errors.New("bad request")
)

// allowedPrefixes are the folders clients may write to.
var allowedPrefixes = []string{"classes/", "trainers/", "forums/", "users/"}

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type Request struct {
	ObjectPath     string `json:"objectPath" validate:"required,max=512"`
	ContentType    string `json:"contentType"`
	ExpiresSeconds int64  `json:"expiresSeconds,omitempty"`
}

type SignedURL struct {
	URL       string `json:"url"`
	Method    string `json:"method"`
	ExpiresAt int64  `json:"expiresAt"`
}

// BlobSigner signs bytes as the configured service account.
type BlobSigner func(ctx context.Context, b []byte) ([]byte, error)

type Signer struct {
	bucket         string
	serviceAccount string
	sign           BlobSigner
	now            func() time.Time
}

func NewSigner(bucket, serviceAccount string, sign BlobSigner) *Signer {
	return &Signer{bucket: bucket, serviceAccount: serviceAccount, sign: sign, now: time.Now}
}

// IAMBlobSigner signs through the IAM Credentials API as serviceAccount.
func IAMBlobSigner(iam *credentials.IamCredentialsClient, serviceAccount string) BlobSigner {
	name := fmt.Sprintf("projects/-/serviceAccounts/%s", serviceAccount)
	return func(ctx context.Context, b []byte) ([]byte, error) {
		resp, err := iam.SignBlob(ctx, &credentialspb.SignBlobRequest{
			Name:    name,
			Payload: b,
		})
		if err != nil {
			return nil, err
		}
		return resp.SignedBlob, nil
	}
}

func (s *Signer) Enabled() bool {
	return s != nil && s.bucket != "" && s.serviceAccount != "" && s.sign != nil
}

func (s *Signer) SignUpload(ctx context.Context, req Request) (*SignedURL, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	path := strings.TrimLeft(strings.TrimSpace(req.ObjectPath), "/")
	if err := checkPath(path); err != nil {
		return nil, err
	}
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if !allowedTypes[contentType] {
		return nil, fmt.Errorf("%w: content type %q not allowed", ErrBadRequest, contentType)
	}

	ttl := time.Duration(req.ExpiresSeconds) * time.Second
	if ttl <= 0 || ttl > maxExpiry {
		ttl = defaultExpiry
	}
	exp := s.now().Add(ttl)

	url, err := storage.SignedURL(s.bucket, path, &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		Expires:        exp,
		ContentType:    contentType,
		GoogleAccessID: s.serviceAccount,
		SignBytes: func(b []byte) ([]byte, error) {
			return s.sign(ctx, b)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sign upload url: %w", err)
	}
	return &SignedURL{URL: url, Method: "PUT", ExpiresAt: exp.Unix()}, nil
}

func checkPath(p string) error {
	if p == "" {
		return fmt.Errorf("%w: objectPath is required", ErrBadRequest)
	}
	if strings.Contains(p, "..") {
		return fmt.Errorf("%w: objectPath must not contain ..", ErrBadRequest)
	}
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(p, prefix) && len(p) > len(prefix) {
			return nil
		}
	}
	return fmt.Errorf("%w: objectPath must start with one of %s", ErrBadRequest, strings.Join(allowedPrefixes, ", "))
}
