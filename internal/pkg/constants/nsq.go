package constants

// NSQ topics
const (
	TopicOTPEmail = "identity.otp.email" // out-of-band delivery of verification codes
)
