// Package storage persists an address book to a single binary file.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ugorji/go/codec"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/contact"
)

// formatVersion is written into every file. Files with any other version are rejected.
const formatVersion = 1

// ErrUnsupportedVersion indicates a file written by an incompatible format version.
var ErrUnsupportedVersion = errors.New("storage: unsupported file version")

// envelope is the on-disk layout, encoded as msgpack.
type envelope struct {
	Version  int          `codec:"v"`
	Contacts []contactDTO `codec:"contacts"`
}

type contactDTO struct {
	Name     string   `codec:"name"`
	Phones   []string `codec:"phones"`
	Birthday *string  `codec:"birthday"`
}

// FileStore reads and writes an address book at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes b to the store's file, replacing it atomically.
func (s *FileStore) Save(b *book.Book) error {
	data, err := encode(b)
	if err != nil {
		return fmt.Errorf("storage: encoding: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("storage: writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("storage: writing %s: %w", s.path, err)
	}
	return nil
}

// Load reads the address book from the store's file.
// Returns (book, true, nil) if found, (empty book, false, nil) if the file does not exist.
// Stored values are not re-validated.
func (s *FileStore) Load(opts ...book.Option) (*book.Book, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return book.New(opts...), false, nil
		}
		return nil, false, fmt.Errorf("storage: reading %s: %w", s.path, err)
	}

	b, err := decode(data, opts...)
	if err != nil {
		return nil, false, fmt.Errorf("storage: parsing %s: %w", s.path, err)
	}
	return b, true, nil
}

func handle() *codec.MsgpackHandle {
	var mh codec.MsgpackHandle
	mh.RawToString = true
	mh.WriteExt = true
	return &mh
}

func encode(b *book.Book) ([]byte, error) {
	env := envelope{Version: formatVersion}
	for _, r := range b.Records() {
		dto := contactDTO{Name: r.Name, Phones: r.PhoneStrings()}
		if r.Birthday != nil {
			v := r.Birthday.String()
			dto.Birthday = &v
		}
		env.Contacts = append(env.Contacts, dto)
	}

	var data []byte
	enc := codec.NewEncoderBytes(&data, handle())
	if err := enc.Encode(env); err != nil {
		return nil, err
	}
	return data, nil
}

func decode(data []byte, opts ...book.Option) (*book.Book, error) {
	var env envelope
	dec := codec.NewDecoderBytes(data, handle())
	if err := dec.Decode(&env); err != nil {
		return nil, err
	}
	if env.Version != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}

	b := book.New(opts...)
	for _, dto := range env.Contacts {
		r := &contact.Record{Name: dto.Name}
		for _, p := range dto.Phones {
			r.Phones = append(r.Phones, contact.RestorePhone(p))
		}
		if dto.Birthday != nil {
			bd := contact.RestoreBirthday(*dto.Birthday)
			r.Birthday = &bd
		}
		b.Add(r)
	}
	return b, nil
}
