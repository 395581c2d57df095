package workshop_models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationCollection is the MongoDB collection holding workshop sign-ups
const RegistrationCollection = "registrations"

// Accepted values for Registration.HowDidYouHear
const (
	SourceSocialMedia = "Social Media"
	SourceCollege     = "College"
	SourceFriend      = "Friend"
	SourceOther       = "Other"
)

// HowDidYouHearOptions lists the accepted referral sources in display order
func HowDidYouHearOptions() []string {
	return []string{SourceSocialMedia, SourceCollege, SourceFriend, SourceOther}
}

// Registration is a public workshop sign-up. Email is unique.
type Registration struct {
	ID                   primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name                 string             `json:"name" bson:"name"`
	Email                string             `json:"email" bson:"email"`
	ContactNo            string             `json:"contactNo" bson:"contactNo"`
	CollegeName          string             `json:"collegeName" bson:"collegeName"`
	CourseSpecialization string             `json:"courseSpecialization" bson:"courseSpecialization"`
	YearOfStudy          string             `json:"yearOfStudy" bson:"yearOfStudy"`
	HowDidYouHear        string             `json:"howDidYouHear" bson:"howDidYouHear"`
	RegisteredAt         time.Time          `json:"registeredAt" bson:"registeredAt"`
}

// NormalizeEmail trims and lowercases an email address the way it is stored
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
