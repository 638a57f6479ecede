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

// Package blob stores the documents attached to ESG reports.
package blob

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/l3montree-dev/supplyguard/shared"
	"go.uber.org/fx"
)

const (
	DriverFilesystem = "fs"
	DriverMemory     = "memory"
	DriverS3         = "s3"
)

// DocumentsPath is the route prefix documents are served from.
const DocumentsPath = "/documents/"

var Module = fx.Options(
	fx.Provide(func() (shared.DocumentStore, error) {
		return NewStoreFromEnv(context.Background())
	}),
)

// NewStoreFromEnv selects the store with DOCUMENT_STORE_DRIVER (fs, memory or s3).
//
//	DOCUMENT_STORE_PATH=<dir> (fs, default ./documents)
//	DOCUMENT_STORE_S3_BUCKET=<bucket> (s3, required)
//	DOCUMENT_STORE_S3_REGION=<region> (s3, default us-east-1)
//	DOCUMENT_STORE_S3_ENDPOINT=<url> (s3, optional for MinIO)
//	DOCUMENT_STORE_S3_PATH_STYLE=true|false
func NewStoreFromEnv(ctx context.Context) (shared.DocumentStore, error) {
	switch driver := shared.GetEnvOr("DOCUMENT_STORE_DRIVER", DriverFilesystem); driver {
	case DriverFilesystem:
		return NewFileSystemStore(shared.GetEnvOr("DOCUMENT_STORE_PATH", "./documents"))
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverS3:
		return NewS3Store(ctx, S3Config{
			Bucket:    os.Getenv("DOCUMENT_STORE_S3_BUCKET"),
			Region:    os.Getenv("DOCUMENT_STORE_S3_REGION"),
			Endpoint:  os.Getenv("DOCUMENT_STORE_S3_ENDPOINT"),
			PathStyle: strings.EqualFold(os.Getenv("DOCUMENT_STORE_S3_PATH_STYLE"), "true"),
		})
	default:
		return nil, fmt.Errorf("unknown document store driver %q", driver)
	}
}

// sanitizeKey rejects keys escaping the store.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return path.Clean(key), nil
}

// documentURL is the link of a document served by the application itself.
func documentURL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return DocumentsPath + strings.Join(parts, "/")
}

// KeyFromURL returns the key of a link built for a document of the
// application. It is false for external links and the "#" placeholder.
func KeyFromURL(link string) (string, bool) {
	rest, ok := strings.CutPrefix(link, DocumentsPath)
	if !ok || rest == "" {
		return "", false
	}
	key, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return key, true
}

func notFound(key string) error {
	return &shared.NotFoundError{Entity: "Document", ID: key}
}
