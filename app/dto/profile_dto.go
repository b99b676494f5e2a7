package dto

// ProfileResponse represents the authenticated user's profile
type ProfileResponse struct {
	User AuthUserDTO `json:"user"`
}

// UpdateProfileRequest represents the request payload for profile updates.
// Password is the current password and is always required as proof of
// identity. All other fields are optional; absent fields stay untouched.
type UpdateProfileRequest struct {
	Password        string  `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
	Username        *string `json:"username,omitempty" validate:"omitempty,min=3,max=64"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	NewPassword     *string `json:"newPassword,omitempty" validate:"omitempty,min=8,max=100"`
	ProfileImageURL *string `json:"userPfpUrl,omitempty" validate:"omitempty,url,max=2048"`
}

// UpdateProfileResponse represents the profile after a successful update
type UpdateProfileResponse struct {
	User AuthUserDTO `json:"user"`
}

// DeleteAccountRequest represents the request payload for account deletion.
// The current password is required as proof of identity.
type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
}

// DeleteAccountResponse summarizes what the deletion removed
type DeleteAccountResponse struct {
	DeletedLinks int64 `json:"deleted_links" example:"3"`
}
