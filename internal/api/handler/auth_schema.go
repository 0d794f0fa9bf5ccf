package handler

import "time"

// --- Requests ---

type registerRequest struct {
	Email     string `json:"email" example:"jane@example.com"`
	Password  string `json:"password" example:"secret1"`
	Role      string `json:"role" example:"client"`
	FirstName string `json:"firstName" example:"Jane"`
	LastName  string `json:"lastName" example:"Doe"`
}

type loginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"secret1"`
}

// --- Responses ---

type profileResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Location  string `json:"location,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type portfolioEntryResponse struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Image       string `json:"image,omitempty"`
}

type freelancerProfileResponse struct {
	Skills        []string                 `json:"skills"`
	HourlyRate    float64                  `json:"hourlyRate"`
	Portfolio     []portfolioEntryResponse `json:"portfolio"`
	Experience    string                   `json:"experience,omitempty"`
	Rating        float64                  `json:"rating"`
	CompletedJobs int                      `json:"completedJobs"`
}

type clientProfileResponse struct {
	CompanyName string `json:"companyName,omitempty"`
	Industry    string `json:"industry,omitempty"`
	PostedJobs  int    `json:"postedJobs"`
}

// userResponse never carries the password hash.
type userResponse struct {
	ID                string                     `json:"id"`
	Email             string                     `json:"email"`
	Role              string                     `json:"role"`
	Profile           profileResponse            `json:"profile"`
	FreelancerProfile *freelancerProfileResponse `json:"freelancerProfile,omitempty"`
	ClientProfile     *clientProfileResponse     `json:"clientProfile,omitempty"`
	IsActive          bool                       `json:"isActive"`
	CreatedAt         time.Time                  `json:"createdAt"`
}

type authResponse struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
	Token   string       `json:"token"`
}

type userEnvelope struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
