package dto

// BillForm carries the new-bill form values. Amount and pct are
// integers, vat stays a string because the form allows it empty.
type BillForm struct {
	Type       string `json:"type" validate:"required,expensetype"`
	Name       string `json:"name" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Amount     int    `json:"amount" validate:"required,gt=0"`
	VAT        string `json:"vat"`
	Pct        int    `json:"pct" validate:"required,gt=0"`
	Commentary string `json:"commentary"`
}

// DisplayBill is a bill projected for the employee's list view: date
// localized, status translated, the verbatim stored date kept in
// raw_date for anything that needs to round-trip it.
type DisplayBill struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	RawDate      string `json:"rawDate"`
	Amount       int    `json:"amount"`
	VAT          string `json:"vat"`
	Pct          int    `json:"pct"`
	Commentary   string `json:"commentary"`
	CommentAdmin string `json:"commentAdmin"`
	Status       string `json:"status"`
	FileURL      string `json:"fileUrl"`
	FileName     string `json:"fileName"`
	Email        string `json:"email"`
}

type UploadFileResponse struct {
	BillID   string `json:"billId"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

type SubmitBillResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Redirect string `json:"redirect"`
}
