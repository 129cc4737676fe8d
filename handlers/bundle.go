// File: handlers/bundle.go
package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// JWTSecret verifies session tokens.
	JWTSecret         []byte
	MaxRequestsPerMin int

	Authorities  *AuthorityHandler
	Timeslots    *TimeslotHandler
	Appointments *AppointmentHandler
	Records      *RecordHandler
	Credentials  *CredentialHandler
}
