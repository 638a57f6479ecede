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
	"io"
	"sync"

	"github.com/l3montree-dev/supplyguard/shared"
)

type memoryDocument struct {
	body        []byte
	contentType string
}

// MemoryStore is used in tests and for local demos. Documents are lost on restart.
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string]memoryDocument
}

var _ shared.DocumentStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{documents: make(map[string]memoryDocument)}
}

func (s *MemoryStore) Driver() string { return DriverMemory }

func (s *MemoryStore) Put(ctx context.Context, key string, contentType string, body io.Reader) (shared.DocumentInfo, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return shared.DocumentInfo{}, err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return shared.DocumentInfo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[k] = memoryDocument{body: b, contentType: contentType}
	return shared.DocumentInfo{Key: k, Size: int64(len(b)), ContentType: contentType}, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (io.ReadCloser, shared.DocumentInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[key]
	if !ok {
		return nil, shared.DocumentInfo{}, notFound(key)
	}
	return io.NopCloser(bytes.NewReader(doc.body)), shared.DocumentInfo{Key: key, Size: int64(len(doc.body)), ContentType: doc.contentType}, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[key]; !ok {
		return notFound(key)
	}
	delete(s.documents, key)
	return nil
}

func (s *MemoryStore) URL(ctx context.Context, key string) (string, error) {
	if _, err := sanitizeKey(key); err != nil {
		return "", err
	}
	return documentURL(key), nil
}
