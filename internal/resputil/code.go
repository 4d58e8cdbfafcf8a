package resputil

type ErrorCode int

const (
	OK ErrorCode = 0

	// General
	InvalidRequest   ErrorCode = 40001
	ValidationFailed ErrorCode = 40002

	// Token
	TokenExpired       ErrorCode = 40101
	TokenInvalid       ErrorCode = 40102
	InvalidCredentials ErrorCode = 40103
	Unauthorized       ErrorCode = 40104

	// Actor lacks permission on the resource
	Forbidden ErrorCode = 40301

	// Account exists but is not verified yet
	UserNotVerified ErrorCode = 40302

	NotFound ErrorCode = 40401

	// Underlying persistence operation raised
	OperationFailed ErrorCode = 50001

	// Indicates laziness of the developer
	// Frontend will directly print the message without any translation
	NotSpecified ErrorCode = 99999
)
