package request_otp

// RequestOTPRequest HTTP request model
type RequestOTPRequest struct {
	DeviceID string `json:"deviceId"`
	IDNumber string `json:"idNumber"`
}
