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
	"context"
	"io"
	"strings"
	"testing"

	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store shared.DocumentStore) {
	ctx := context.Background()
	key := "esg-reports/1/annual-report.pdf"

	info, err := store.Put(ctx, key, "application/pdf", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), info.Size)

	t.Run("should read the document back", func(t *testing.T) {
		body, info, err := store.Get(ctx, key)
		require.NoError(t, err)
		defer body.Close()
		b, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7", string(b))
		assert.Equal(t, "application/pdf", info.ContentType)
	})

	t.Run("should replace a document with the same key", func(t *testing.T) {
		_, err := store.Put(ctx, key, "application/pdf", strings.NewReader("v2"))
		require.NoError(t, err)
		body, _, err := store.Get(ctx, key)
		require.NoError(t, err)
		defer body.Close()
		b, _ := io.ReadAll(body)
		assert.Equal(t, "v2", string(b))
	})

	t.Run("should build an application url", func(t *testing.T) {
		link, err := store.URL(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "/documents/esg-reports/1/annual-report.pdf", link)
	})

	t.Run("should reject keys escaping the store", func(t *testing.T) {
		_, err := store.Put(ctx, "../etc/passwd", "text/plain", strings.NewReader("x"))
		assert.Error(t, err)
		_, err = store.URL(ctx, "/absolute")
		assert.Error(t, err)
	})

	t.Run("should report a missing document as not found", func(t *testing.T) {
		_, _, err := store.Get(ctx, "esg-reports/unknown.pdf")
		assert.True(t, shared.IsNotFound(err), err)
	})
}

func TestFileSystemStore(t *testing.T) {
	store, err := NewFileSystemStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)

	require.NoError(t, store.Delete(context.Background(), "esg-reports/1/annual-report.pdf"))
	assert.True(t, shared.IsNotFound(store.Delete(context.Background(), "esg-reports/1/annual-report.pdf")))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	testStore(t, store)

	require.NoError(t, store.Delete(context.Background(), "esg-reports/1/annual-report.pdf"))
	assert.True(t, shared.IsNotFound(store.Delete(context.Background(), "esg-reports/1/annual-report.pdf")))
}

func TestNewStoreFromEnv(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		t.Setenv("DOCUMENT_STORE_DRIVER", "memory")
		store, err := NewStoreFromEnv(context.Background())
		require.NoError(t, err)
		assert.Equal(t, DriverMemory, store.Driver())
	})

	t.Run("fs", func(t *testing.T) {
		t.Setenv("DOCUMENT_STORE_DRIVER", "fs")
		t.Setenv("DOCUMENT_STORE_PATH", t.TempDir())
		store, err := NewStoreFromEnv(context.Background())
		require.NoError(t, err)
		assert.Equal(t, DriverFilesystem, store.Driver())
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		t.Setenv("DOCUMENT_STORE_DRIVER", "s3")
		t.Setenv("DOCUMENT_STORE_S3_BUCKET", "")
		_, err := NewStoreFromEnv(context.Background())
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DOCUMENT_STORE_DRIVER", "ftp")
		_, err := NewStoreFromEnv(context.Background())
		assert.Error(t, err)
	})
}

func TestKeyFromURL(t *testing.T) {
	key, ok := KeyFromURL(documentURL("esg-reports/1/annual report.pdf"))
	assert.True(t, ok)
	assert.Equal(t, "esg-reports/1/annual report.pdf", key)

	for _, link := range []string{"#", "", "https://example.com/report.pdf", DocumentsPath} {
		_, ok := KeyFromURL(link)
		assert.False(t, ok, link)
	}
}
