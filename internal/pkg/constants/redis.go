package constants

// Redis key formats
const (
	// Identity Service
	KeyPendingVerification = "auth:otp:%s:%s" // Format: auth:otp:{email}:{role}
)
