// Package testing provides test utilities and database setup for testing the link shortening system
package testing

import (
	"fmt"
	"math/rand"

	"github.com/linklift/linklift/models"
	"github.com/linklift/linklift/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext password behind every fixture user's hash
const TestPassword = "TestPass123!"

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates a test user with a unique email and a known password
func (tf *TestFixtures) CreateTestUser() (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)

	user := &models.User{
		UUID:         uuid.New(),
		Username:     fmt.Sprintf("user_%s", randomDigits),
		Email:        fmt.Sprintf("john.doe.%s@example.com", randomDigits),
		PasswordHash: string(hashedPassword),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}

	err = tf.DB.DB.Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestLink creates a link with a random slug, optionally owned
func (tf *TestFixtures) CreateTestLink(ownerID *uint) (*models.Link, error) {
	slug := fmt.Sprintf("test%06d", rand.Intn(1000000))

	link := &models.Link{
		Slug:        slug,
		OriginalURL: "https://example.com/articles/" + slug,
		OwnerID:     ownerID,
		CreatedAt:   utils.UTCNow(),
		UpdatedAt:   utils.UTCNow(),
	}

	err := tf.DB.DB.Create(link).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test link: %w", err)
	}

	return link, nil
}

// CreateTestClickEvent creates an enriched click event for a link
func (tf *TestFixtures) CreateTestClickEvent(linkID uint, countryCode, deviceType string) (*models.ClickEvent, error) {
	if countryCode == "" {
		countryCode = models.UnknownValue
	}
	if deviceType == "" {
		deviceType = models.UnknownValue
	}

	event := &models.ClickEvent{
		LinkID:      linkID,
		ClickedAt:   utils.UTCNow(),
		Continent:   models.UnknownValue,
		CountryCode: countryCode,
		DeviceType:  deviceType,
		OSName:      models.UnknownValue,
		BrowserName: models.UnknownValue,
	}

	err := tf.DB.DB.Create(event).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test click event: %w", err)
	}

	return event, nil
}

// CreateMultipleTestUsers creates several distinct users
func (tf *TestFixtures) CreateMultipleTestUsers(count int) ([]*models.User, error) {
	var users []*models.User
	for i := 0; i < count; i++ {
		user, err := tf.CreateTestUser()
		if err != nil {
			return nil, fmt.Errorf("failed to create user %d: %w", i, err)
		}
		users = append(users, user)
	}
	return users, nil
}
