package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shidoukh/shidoukh/internal/database"
	"github.com/shidoukh/shidoukh/pkg/mail"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := database.Open(database.Config{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	return db
}

// fakeMailer records outbound messages and can be told to fail.
type fakeMailer struct {
	mu       sync.Mutex
	messages []mail.Message
	fail     bool
}

func (m *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *fakeMailer) sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.messages...)
}
