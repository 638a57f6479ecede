// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/l3montree-dev/supplyguard/shared"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// S3Store keeps documents in a single bucket of an S3 compatible backend (AWS S3 or MinIO).
// Documents are proxied through the application, the bucket does not need to be public.
type S3Store struct {
	client *s3.Client
	bucket string
}

var _ shared.DocumentStore = (*S3Store)(nil)

type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	PathStyle bool
	// HTTPClient replaces the instrumented default client. Used in tests.
	HTTPClient *http.Client
	// Credentials are taken from the default chain when nil.
	Credentials aws.CredentialsProvider
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("DOCUMENT_STORE_S3_BUCKET required for s3 driver")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.Credentials != nil {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(cfg.Credentials))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.HTTPClient = httpClient
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

func (s *S3Store) Driver() string { return DriverS3 }

func (s *S3Store) Put(ctx context.Context, key string, contentType string, body io.Reader) (shared.DocumentInfo, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return shared.DocumentInfo{}, err
	}

	// buffer the body, PutObject needs a seekable reader to sign the payload
	b, err := io.ReadAll(body)
	if err != nil {
		return shared.DocumentInfo{}, err
	}

	input := &s3.PutObjectInput{
		Bucket:        &s.bucket,
		Key:           &k,
		Body:          bytes.NewReader(b),
		ContentLength: aws.Int64(int64(len(b))),
	}
	if contentType != "" {
		input.ContentType = &contentType
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return shared.DocumentInfo{}, err
	}
	return shared.DocumentInfo{Key: k, Size: int64(len(b)), ContentType: contentType}, nil
}

func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, shared.DocumentInfo, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, shared.DocumentInfo{}, notFound(key)
		}
		return nil, shared.DocumentInfo{}, err
	}
	return out.Body, shared.DocumentInfo{
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key})
	return err
}

func (s *S3Store) URL(ctx context.Context, key string) (string, error) {
	if _, err := sanitizeKey(key); err != nil {
		return "", err
	}
	return documentURL(key), nil
}
