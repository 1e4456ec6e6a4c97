package models

// Email is one transactional message.
type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// BookingParties bundles a booking with everyone it concerns, for notifications.
type BookingParties struct {
	Booking    *Booking
	Lawyer     *LawyerProfile
	LawyerUser *User
	Client     *User
}
