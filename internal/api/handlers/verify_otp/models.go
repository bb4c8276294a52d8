package verify_otp

// VerifyOTPRequest HTTP request model
type VerifyOTPRequest struct {
	DeviceID string `json:"deviceId"`
	IDNumber string `json:"idNumber"`
	Code     string `json:"code"`
}

// TokenResponse HTTP response model
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	AccountID   string `json:"accountId"`
	Role        string `json:"role"`
}
