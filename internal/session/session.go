package session

// Session is the signed-in employee's context, built by the auth
// middleware from the validated token and passed explicitly to the
// services. It replaces any ambient user lookup: created at login,
// gone when the token expires or the client drops it.
type Session struct {
	Email string
}
