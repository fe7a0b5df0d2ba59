// File: /models/user.go
package models

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleHost  UserRole = "HOST"
	RoleAdmin UserRole = "ADMIN"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

type User struct {
	ID        string     `json:"id" gorm:"primaryKey;size:191"`
	Name      string     `json:"name" gorm:"not null;size:255"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string     `json:"-" gorm:"not null;size:255"`
	Role      UserRole   `json:"role" gorm:"not null;size:20;default:'USER'"`
	Status    UserStatus `json:"status" gorm:"not null;size:20;default:'ACTIVE'"`
	Avatar    *string    `json:"avatar" gorm:"size:500"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relationships
	HostedEvents []Event   `json:"hosted_events,omitempty" gorm:"foreignKey:HostID"`
	Bookings     []Booking `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
}

type HostRequestStatus string

const (
	HostRequestPending  HostRequestStatus = "PENDING"
	HostRequestApproved HostRequestStatus = "APPROVED"
	HostRequestRejected HostRequestStatus = "REJECTED"
)

// HostRequest is a user's application to become an event host. Approval
// promotes the user to RoleHost.
type HostRequest struct {
	ID        string            `json:"id" gorm:"primaryKey;size:191"`
	UserID    string            `json:"user_id" gorm:"not null;size:191;index"`
	Status    HostRequestStatus `json:"status" gorm:"not null;size:20;default:'PENDING'"`
	Reason    string            `json:"reason" gorm:"type:text"`
	Note      string            `json:"note" gorm:"type:text"` // admin's decision note
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}
