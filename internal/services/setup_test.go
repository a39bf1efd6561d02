package services

import (
	"sync"
	"testing"

	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pottypal/internal/infra"
	"pottypal/internal/models/db_models"
	"pottypal/pkg/utils"
)

// newTestDB opens a fresh in-memory database per test. A single
// connection keeps every goroutine on the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := infra.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedAccount(t *testing.T, db *gorm.DB) *db_models.Account {
	t.Helper()

	hash, err := utils.HashPassword("test-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	account := &db_models.Account{
		Name:         "Test Parent",
		Email:        "parent@example.com",
		PasswordHash: hash,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	return account
}

func seedChild(t *testing.T, db *gorm.DB, account *db_models.Account, points int) *db_models.Child {
	t.Helper()

	hash, err := utils.HashPasscode("1234")
	if err != nil {
		t.Fatalf("failed to hash passcode: %v", err)
	}

	child := &db_models.Child{
		AccountID:    account.ID,
		Name:         "Emma",
		TotalPoints:  points,
		PasscodeHash: hash,
	}
	if err := db.Create(child).Error; err != nil {
		t.Fatalf("failed to seed child: %v", err)
	}
	return child
}

func seedReward(t *testing.T, db *gorm.DB, child *db_models.Child, cost int, active bool) *db_models.Reward {
	t.Helper()

	reward := &db_models.Reward{
		ChildID:    child.ID,
		Name:       "Ice cream",
		PointsCost: cost,
		Icon:       "🍦",
		IsActive:   active,
	}
	if err := db.Create(reward).Error; err != nil {
		t.Fatalf("failed to seed reward: %v", err)
	}
	return reward
}

func seedCaregiver(t *testing.T, db *gorm.DB, child *db_models.Child, email string, notificationTypes []string) *db_models.Caregiver {
	t.Helper()

	caregiver := &db_models.Caregiver{
		ChildID:              child.ID,
		Name:                 "Grandma",
		Email:                &email,
		ReceiveNotifications: true,
		NotificationTypes:    pq.StringArray(notificationTypes),
	}
	if err := db.Create(caregiver).Error; err != nil {
		t.Fatalf("failed to seed caregiver: %v", err)
	}
	return caregiver
}

func childBalance(t *testing.T, db *gorm.DB, child *db_models.Child) int {
	t.Helper()

	var fresh db_models.Child
	if err := db.First(&fresh, "id = ?", child.ID).Error; err != nil {
		t.Fatalf("failed to reload child: %v", err)
	}
	return fresh.TotalPoints
}

// mailRecorder satisfies IMailService without touching the network.
type mailRecorder struct {
	mu            sync.Mutex
	notifications []string
	resets        []string
}

func (m *mailRecorder) SendMailToNotifyCaregiver(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, to)
	return nil
}

func (m *mailRecorder) SendMailToResetPassword(email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, email)
	return nil
}
