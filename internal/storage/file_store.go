package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lshigami/lawdesk/config"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotPDF       = errors.New("file is not a PDF document")
	ErrTooLarge     = errors.New("file exceeds the upload limit")
	ErrInvalidKey   = errors.New("invalid storage key")
	ErrBlobNotFound = errors.New("stored file not found")
)

const pdfExt = ".pdf"

// FileStore keeps uploaded PDFs on local disk under a single directory.
type FileStore interface {
	Save(ctx context.Context, r io.Reader) (key string, size int64, err error)
	Open(key string) (*os.File, error)
	Remove(key string) error
}

type diskStore struct {
	dir      string
	maxBytes int64
}

func NewFileStore(cfg *config.Config) (FileStore, error) {
	return NewDiskStore(cfg.Storage.Dir, cfg.Storage.MaxUploadMB<<20)
}

func NewDiskStore(dir string, maxBytes int64) (FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &diskStore{dir: dir, maxBytes: maxBytes}, nil
}

func (s *diskStore) Save(ctx context.Context, r io.Reader) (string, int64, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", 0, fmt.Errorf("read upload: %w", err)
	}
	if http.DetectContentType(head) != "application/pdf" {
		return "", 0, ErrNotPDF
	}

	key := uuid.NewString() + pdfExt
	path := filepath.Join(s.dir, key)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return "", 0, fmt.Errorf("create blob: %w", err)
	}

	src := io.Reader(br)
	if s.maxBytes > 0 {
		src = io.LimitReader(br, s.maxBytes+1)
	}
	n, copyErr := io.Copy(f, contextReader{ctx: ctx, r: src})
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		err = fmt.Errorf("write blob: %w", copyErr)
	case closeErr != nil:
		err = fmt.Errorf("close blob: %w", closeErr)
	case s.maxBytes > 0 && n > s.maxBytes:
		err = ErrTooLarge
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Warn().Err(rmErr).Str("key", key).Msg("Failed to remove partial upload")
		}
		return "", 0, err
	}
	return key, n, nil
}

func (s *diskStore) Open(key string) (*os.File, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	return f, err
}

func (s *diskStore) Remove(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// path only accepts keys this store generated.
func (s *diskStore) path(key string) (string, error) {
	id, ok := strings.CutSuffix(key, pdfExt)
	if !ok {
		return "", ErrInvalidKey
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.dir, key), nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
