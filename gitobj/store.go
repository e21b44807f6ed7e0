package gitobj

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/zlib"
	"github.com/p7r0x7/shavanity"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Store is a repository's object database. Objects are read loose when possible and through git
// otherwise; they are always written loose.
type Store struct {
	repo    *Repository
	objects string
	alg     shavanity.Algorithm
}

// Open locates the object database and object format of the repository at dir.
func Open(ctx context.Context, dir string) (*Store, error) {
	repo := NewRepository(dir)
	objects, err := repo.ObjectsDir(ctx)
	if err != nil {
		return nil, err
	}
	alg, err := shavanity.LookupAlgorithm(repo.ObjectFormat(ctx))
	if err != nil {
		return nil, err
	}
	return NewStore(repo, objects, alg), nil
}

// NewStore returns a Store over the object directory objects. repo may be nil, in which case only
// loose objects named by full id can be read.
func NewStore(repo *Repository, objects string, alg shavanity.Algorithm) *Store {
	return &Store{repo: repo, objects: objects, alg: alg}
}

// Algorithm returns the digest of the repository's object format.
func (s *Store) Algorithm() shavanity.Algorithm { return s.alg }

// Path returns the loose object path for id: objects/xx/yyyy...
func (s *Store) Path(id string) string {
	return filepath.Join(s.objects, id[:2], id[2:])
}

// Read resolves ref and returns its id and raw object, header included, exactly as it is hashed.
// The object's digest is checked against its id.
func (s *Store) Read(ctx context.Context, ref string) (string, []byte, error) {
	id := ref
	if s.repo != nil {
		var err error
		if id, err = s.repo.ResolveRef(ctx, ref, s.alg.Size()); err != nil {
			return "", nil, err
		}
	} else if !validID(id, s.alg.Size()) {
		return "", nil, fmt.Errorf("resolving %q: no repository to resolve names in", ref)
	}

	raw, err := s.readLoose(id)
	if errors.Is(err, fs.ErrNotExist) && s.repo != nil {
		raw, err = s.readPacked(ctx, id)
	}
	if err != nil {
		return "", nil, fmt.Errorf("reading object %s: %w", id, err)
	}
	if sum := s.alg.SumHex(raw); sum != id {
		return "", nil, fmt.Errorf("reading object %s: %w: content hashes to %s",
			id, shavanity.ErrMalformedObject, sum)
	}
	return id, raw, nil
}

func (s *Store) readLoose(id string) ([]byte, error) {
	file, err := os.Open(s.Path(id))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	z, err := zlib.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", file.Name(), err)
	}
	defer z.Close()
	raw, err := io.ReadAll(z)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", file.Name(), err)
	}
	return raw, nil
}

func (s *Store) readPacked(ctx context.Context, id string) ([]byte, error) {
	kind, body, err := s.repo.CatFile(ctx, id)
	if err != nil {
		return nil, err
	}
	raw := make([]byte, 0, len(kind)+24+len(body))
	raw = append(raw, kind...)
	raw = append(raw, ' ')
	raw = strconv.AppendInt(raw, int64(len(body)), 10)
	raw = append(raw, 0)
	return append(raw, body...), nil
}

// Write stores raw as the loose object id and returns its path. The fan-out directory is created
// as needed and the file appears atomically. Writing an object that already exists is a no-op.
func (s *Store) Write(id string, raw []byte) (string, error) {
	if sum := s.alg.SumHex(raw); sum != id {
		return "", fmt.Errorf("writing object %s: content hashes to %s", id, sum)
	}
	path := s.Path(id)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating object directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "tmp_obj_")
	if err != nil {
		return "", fmt.Errorf("writing object %s: %w", id, err)
	}
	defer os.Remove(tmp.Name()) /* Fails harmlessly once renamed. */

	var buf bytes.Buffer
	z := zlib.NewWriter(&buf)
	if _, err = z.Write(raw); err == nil {
		err = z.Close()
	}
	if err == nil {
		_, err = tmp.Write(buf.Bytes())
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o444)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		return "", fmt.Errorf("writing object %s: %w", id, err)
	}
	return path, nil
}
