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
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/l3montree-dev/supplyguard/shared"
)

// FileSystemStore keeps every document as a file below root. The content type
// lives in a sidecar file next to it.
type FileSystemStore struct {
	root string
}

var _ shared.DocumentStore = (*FileSystemStore)(nil)

func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FileSystemStore{root: root}, nil
}

func (s *FileSystemStore) Driver() string { return DriverFilesystem }

type metaFile struct {
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

func (s *FileSystemStore) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(k)), nil
}

// Put replaces a document with the same key.
func (s *FileSystemStore) Put(ctx context.Context, key string, contentType string, body io.Reader) (shared.DocumentInfo, error) {
	dataPath, err := s.pathFor(key)
	if err != nil {
		return shared.DocumentInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return shared.DocumentInfo{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".tmp-*")
	if err != nil {
		return shared.DocumentInfo{}, err
	}
	defer os.Remove(tmp.Name()) // nolint:errcheck

	size, err := io.Copy(tmp, body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return shared.DocumentInfo{}, err
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return shared.DocumentInfo{}, err
	}

	meta, err := json.Marshal(metaFile{ContentType: contentType, Size: size})
	if err != nil {
		return shared.DocumentInfo{}, err
	}
	if err := os.WriteFile(dataPath+".meta", meta, 0o644); err != nil {
		return shared.DocumentInfo{}, err
	}
	return shared.DocumentInfo{Key: key, Size: size, ContentType: contentType}, nil
}

func (s *FileSystemStore) Get(ctx context.Context, key string) (io.ReadCloser, shared.DocumentInfo, error) {
	dataPath, err := s.pathFor(key)
	if err != nil {
		return nil, shared.DocumentInfo{}, err
	}

	file, err := os.Open(dataPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, shared.DocumentInfo{}, notFound(key)
	} else if err != nil {
		return nil, shared.DocumentInfo{}, err
	}

	var meta metaFile
	if b, err := os.ReadFile(dataPath + ".meta"); err == nil {
		_ = json.Unmarshal(b, &meta)
	}
	return file, shared.DocumentInfo{Key: key, Size: meta.Size, ContentType: meta.ContentType}, nil
}

func (s *FileSystemStore) Delete(ctx context.Context, key string) error {
	dataPath, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dataPath); errors.Is(err, fs.ErrNotExist) {
		return notFound(key)
	} else if err != nil {
		return err
	}
	_ = os.Remove(dataPath + ".meta")
	return nil
}

func (s *FileSystemStore) URL(ctx context.Context, key string) (string, error) {
	if _, err := sanitizeKey(key); err != nil {
		return "", err
	}
	return documentURL(key), nil
}
