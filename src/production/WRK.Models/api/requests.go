package api_models

import workshop_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/workshop"

// LoginRequest is the admin login body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the public workshop registration body
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required"`
	ContactNo            string `json:"contactNo" validate:"required"`
	CollegeName          string `json:"collegeName" validate:"required"`
	CourseSpecialization string `json:"courseSpecialization" validate:"required"`
	YearOfStudy          string `json:"yearOfStudy" validate:"required"`
	HowDidYouHear        string `json:"howDidYouHear" validate:"required,oneof='Social Media' College Friend Other"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the body of every error and informational reply
type MessageResponse struct {
	Msg string `json:"msg"`
}

// RegistrationResponse is returned by a successful registration
type RegistrationResponse struct {
	Msg          string                        `json:"msg"`
	Registration *workshop_models.Registration `json:"registration"`
}
