package domain

import (
	"time"
)

type User struct {
	ID                string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Name              string
	Email             string
	EncryptedPassword string
}

type Customer struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Email     string
	ImageURL  string
}

type Invoice struct {
	ID         string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CustomerID string
	// AmountCents сумма счета в минорных единицах (центах).
	AmountCents int64
	Status      InvoiceStatusType
	Date        time.Time
}

type Revenue struct {
	Month   string
	Revenue int64
}
