// Package domain holds the records the bot stores and passes between packages.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ServiceCalculation labels leads produced by the cargo calculation flow.
const ServiceCalculation = "Расчёт доставки"

// ServiceDelivery labels leads produced by the delivery method flow.
const ServiceDelivery = "Доставка грузов"

// User is one chat participant. Optional profile fields are nil when unknown.
type User struct {
	ID            int64     `db:"id"`
	Username      *string   `db:"username"`
	FirstName     *string   `db:"first_name"`
	LastName      *string   `db:"last_name"`
	Phone         *string   `db:"phone"`
	ContactShared bool      `db:"contact_shared"`
	CreatedAt     time.Time `db:"created_at"`
}

// FullName joins the first and last name, skipping the missing parts.
func (u User) FullName() string {
	var parts []string
	for _, p := range []*string{u.FirstName, u.LastName} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	return strings.Join(parts, " ")
}

// PhoneNumber returns the stored phone or "".
func (u User) PhoneNumber() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}

// Lead is a completed intake. Empty optional fields did not apply to the flow.
type Lead struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	Service        string    `db:"service"`
	CargoName      string    `db:"cargo_name"`
	CargoVolume    string    `db:"cargo_volume"`
	CargoWeight    string    `db:"cargo_weight"`
	DeliveryMethod string    `db:"delivery_method"`
	CustomerName   string    `db:"customer_name"`
	Phone          string    `db:"phone"`
	CreatedAt      time.Time `db:"created_at"`
}

// Contact is a phone number shared through the contact button.
type Contact struct {
	UserID    int64
	Phone     string
	FirstName string
	LastName  string
}

// BroadcastStat records the outcome of one broadcast run.
type BroadcastStat struct {
	ID          uuid.UUID `db:"id"`
	Kind        string    `db:"kind"`
	Total       int       `db:"total"`
	Sent        int       `db:"sent"`
	Unreachable int       `db:"unreachable"`
	Failed      int       `db:"failed"`
	Skipped     int       `db:"skipped"`
	StartedAt   time.Time `db:"started_at"`
	FinishedAt  time.Time `db:"finished_at"`
}
