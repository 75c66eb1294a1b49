package models

import "time"

type BillStatus string

const (
	BillStatusPending  BillStatus = "pending"
	BillStatusAccepted BillStatus = "accepted"
	BillStatusRefused  BillStatus = "refused"
)

// Expense categories offered on the new-bill form. The set is closed:
// the form rejects anything else.
const (
	ExpenseTypeTransport    = "Transports"
	ExpenseTypeRestaurant   = "Restaurants et bars"
	ExpenseTypeHotel        = "Hôtel et logement"
	ExpenseTypeOnline       = "Services en ligne"
	ExpenseTypeIT           = "IT et électronique"
	ExpenseTypeEquipment    = "Equipement et matériel"
	ExpenseTypeOfficeSupply = "Fournitures de bureau"
)

// Bill is one expense-report record. The id is assigned by the store
// on first create; date is kept verbatim as the employee typed it and
// is not guaranteed to parse. VAT is a string on purpose (the form
// allows it to be empty).
type Bill struct {
	ID           string     `db:"id"`
	Type         string     `db:"type"`
	Name         string     `db:"name"`
	Date         string     `db:"date"`
	Amount       int        `db:"amount"`
	VAT          string     `db:"vat"`
	Pct          int        `db:"pct"`
	Commentary   string     `db:"commentary"`
	CommentAdmin string     `db:"comment_admin"`
	Status       BillStatus `db:"status"`
	FileURL      string     `db:"file_url"`
	FileName     string     `db:"file_name"`
	Email        string     `db:"email"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}
