package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrAdministrador is returned when someone tries to change the
// Administrador ACL, which is always Full.
var ErrAdministrador = errors.New("acl: administrador access cannot be changed")

// Well-known role ids, mirrored from the seeded roles table.
const (
	administradorID = 1
	clienteID       = 2
)

// Store keeps every role's ACL.
type Store interface {
	Get(rolID int) ACL
	Set(rolID int, a ACL) error
	Delete(rolID int) error
}

// FileStore persists all ACLs in a single JSON object keyed by role id.
// The file is read once and rewritten atomically on every change.
type FileStore struct {
	path string

	mu   sync.RWMutex
	acls map[string]ACL
}

// NewFileStore loads path. A missing file starts from the default ACLs; a
// corrupt one is logged and treated the same way.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, acls: defaults()}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read acl file: %w", err)
	}

	var stored map[string]json.RawMessage
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("acl file is corrupt, using defaults")
		return s, nil
	}
	s.acls = make(map[string]ACL, len(stored))
	for k, raw := range stored {
		s.acls[k] = Parse(raw)
	}
	return s, nil
}

func (s *FileStore) Get(rolID int) ACL {
	if rolID == administradorID {
		return Full()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.acls[strconv.Itoa(rolID)]
	if !ok {
		return Empty()
	}
	return a
}

func (s *FileStore) Set(rolID int, a ACL) error {
	if rolID == administradorID {
		return ErrAdministrador
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snapshot()
	next[strconv.Itoa(rolID)] = a.Sanitize()
	if err := s.write(next); err != nil {
		return err
	}
	s.acls = next
	return nil
}

func (s *FileStore) Delete(rolID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strconv.Itoa(rolID)
	if _, ok := s.acls[key]; !ok {
		return nil
	}
	next := s.snapshot()
	delete(next, key)
	if err := s.write(next); err != nil {
		return err
	}
	s.acls = next
	return nil
}

func (s *FileStore) snapshot() map[string]ACL {
	out := make(map[string]ACL, len(s.acls)+1)
	for k, v := range s.acls {
		out[k] = v
	}
	return out
}

// write replaces the file through a temp file + rename so readers never
// see a half-written document.
func (s *FileStore) write(acls map[string]ACL) error {
	data, err := json.MarshalIndent(acls, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create acl dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".acl-*.json")
	if err != nil {
		return fmt.Errorf("create acl temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write acl file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func defaults() map[string]ACL {
	cliente := Empty()
	grant := func(module string, actions ...string) {
		cliente.Permisos[module] = true
		cliente.Privilegios[module] = actions
	}
	grant("servicios", Ver)
	grant("categoriaservicios", Ver)
	grant("vehiculos", Ver)
	grant("agendacitas", Crear, Editar, Ver)
	grant("evaluaciones", Crear, Ver)
	return map[string]ACL{strconv.Itoa(clienteID): cliente}
}
