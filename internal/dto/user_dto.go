package dto

type ProfileResponse struct {
	User   UserDTO            `json:"user"`
	Lawyer *LawyerProfileDTO  `json:"lawyer,omitempty"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
}
