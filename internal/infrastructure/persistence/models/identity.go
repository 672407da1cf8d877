package models

import (
	"time"

	"github.com/movilshop/backend/internal/domain/identity"
)

// UserModel is the persistence model for staff accounts
type UserModel struct {
	AggregateModel
	Username       string     `gorm:"size:50;not null;uniqueIndex"`
	DisplayName    string     `gorm:"size:200;not null"`
	PasswordHash   string     `gorm:"size:100;not null"`
	Role           string     `gorm:"size:20;not null;index"`
	Status         string     `gorm:"size:20;not null;index"`
	LastLoginAt    *time.Time
	LastLoginIP    string     `gorm:"size:45"`
	FailedAttempts int        `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Username:          m.Username,
		DisplayName:       m.DisplayName,
		PasswordHash:      m.PasswordHash,
		Role:              identity.Role(m.Role),
		Status:            identity.UserStatus(m.Status),
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
	}
}

// UserModelFromDomain converts a domain user to the persistence model
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		PasswordHash:   u.PasswordHash,
		Role:           string(u.Role),
		Status:         string(u.Status),
		LastLoginAt:    u.LastLoginAt,
		LastLoginIP:    u.LastLoginIP,
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}
