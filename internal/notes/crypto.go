package notes

import (
	"fmt"

	"github.com/quirelabs/quire/internal/cipher"
)

// EncryptNote ciphers a note's content in place and marks it encrypted.
// The transformation records no version snapshot.
func (m *Manager) EncryptNote(noteID int, key string) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}
	if n.Encrypted {
		return fmt.Errorf("note %d is already encrypted", noteID)
	}
	n.OverwriteContent(cipher.Apply(n.Content, key))
	n.Encrypted = true

	m.audit.Log("info", fmt.Sprintf("note %d encrypted", noteID))
	if err := m.saveNote(n); err != nil {
		m.logger.Warn("mirror encrypted save failed", slogErr(err))
		return err
	}
	return nil
}

// DecryptNote reverses EncryptNote with the same key.
func (m *Manager) DecryptNote(noteID int, key string) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}
	if !n.Encrypted {
		return fmt.Errorf("note %d is not encrypted", noteID)
	}
	n.OverwriteContent(cipher.Apply(n.Content, key))
	n.Encrypted = false

	m.audit.Log("info", fmt.Sprintf("note %d decrypted", noteID))
	if err := m.saveNote(n); err != nil {
		m.logger.Warn("mirror decrypted save failed", slogErr(err))
		return err
	}
	return nil
}
