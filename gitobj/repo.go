// Package gitobj reads and writes git objects for the forging tools: it resolves references and
// repository layout through the git CLI and handles loose objects itself.
package gitobj

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Repository runs git against one directory; every command is issued as "git -C <dir> ...".
type Repository struct {
	dir string
}

// NewRepository returns a Repository targeting dir, a working tree or a bare repository.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Dir returns the repository directory.
func (r *Repository) Dir() string { return r.dir }

// Run executes git with args and returns stdout. Stderr is captured and included in the error
// on failure.
func (r *Repository) Run(ctx context.Context, args ...string) (string, error) {
	out, err := r.output(ctx, args...)
	return string(out), err
}

func (r *Repository) output(ctx context.Context, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return nil, fmt.Errorf("git %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), r.dir, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// ResolveRef returns the full object id ref names, without peeling tags. size is the digest
// length in bytes the id must have.
func (r *Repository) ResolveRef(ctx context.Context, ref string, size int) (string, error) {
	out, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", "--end-of-options", ref)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", ref, err)
	}
	id := strings.TrimSpace(out)
	if !validID(id, size) {
		return "", fmt.Errorf("resolving %q: unexpected object id %q", ref, id)
	}
	return id, nil
}

// ObjectFormat returns the repository's object format, "sha1" or "sha256". Versions of git
// predating --show-object-format only support sha1.
func (r *Repository) ObjectFormat(ctx context.Context) string {
	out, err := r.Run(ctx, "rev-parse", "--show-object-format")
	if format := strings.TrimSpace(out); err == nil && format != "" {
		return format
	}
	return "sha1"
}

// ObjectsDir returns the absolute path of the object database, honouring GIT_OBJECT_DIRECTORY
// and linked worktrees.
func (r *Repository) ObjectsDir(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "rev-parse", "--git-path", "objects")
	if err != nil {
		return "", fmt.Errorf("locating object database: %w", err)
	}
	path := strings.TrimSpace(out)
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.dir, path)
	}
	return filepath.Abs(path)
}

// CatFile returns the type and body of object id, wherever git stores it.
func (r *Repository) CatFile(ctx context.Context, id string) (string, []byte, error) {
	out, err := r.Run(ctx, "cat-file", "-t", id)
	if err != nil {
		return "", nil, err
	}
	kind := strings.TrimSpace(out)
	body, err := r.output(ctx, "cat-file", kind, id)
	if err != nil {
		return "", nil, err
	}
	return kind, body, nil
}

// validID reports whether id is a full-length lowercase hex object id for a digest of size bytes.
func validID(id string, size int) bool {
	return len(id) == size<<1 && strings.Trim(id, "0123456789abcdef") == ""
}
