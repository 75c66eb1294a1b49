package routes

// Client-side route identifiers handed to the navigation callback.
const (
	Bills   = "/bills"
	NewBill = "/new-bill"
	Login   = "/"
)
