package domain

import "time"

// Lead rows share a bilingual Language field ("ar" or "en") so follow-up
// happens in the language the visitor used.

type ContactSubmission struct {
	Id        int64
	Name      string
	Email     Email
	Phone     string
	Subject   string
	Message   string
	Language  string
	CreatedAt time.Time
}

type QuoteRequest struct {
	Id          int64
	CompanyName string
	Name        string
	Email       Email
	Phone       string
	Origin      string
	Destination string
	CargoType   string
	Details     string
	Language    string
	CreatedAt   time.Time
}

type JobApplication struct {
	Id        int64
	Name      string
	Email     Email
	Phone     string
	Position  string
	CoverNote string
	CvUrl     string
	Language  string
	CreatedAt time.Time
}
