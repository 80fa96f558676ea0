package domain

// Error codes surfaced to clients. The code is the message-lookup key;
// clients translate it, the server only falls back to the English text below.
const (
	CodeProjectNotFound     = "ec5_11"
	CodeRequired            = "ec5_21"
	CodeInvalidUUID         = "ec5_28"
	CodeInvalidValue        = "ec5_29"
	CodeInvalidCredentials  = "ec5_33"
	CodeTooLong             = "ec5_44"
	CodeNotLoggedIn         = "ec5_70"
	CodeSessionExpired      = "ec5_77"
	CodeMissingPermission   = "ec5_91"
	CodeServerError         = "ec5_103"
	CodeGeocoderFailed      = "ec5_116"
	CodeInvalidProjectName  = "ec5_205"
	CodeProjectNameMissing  = "ec5_224"
	CodeProjectImportFailed = "ec5_225"
	CodeReservedProjectName = "ec5_236"
	CodeEntryDeleteFailed   = "ec5_240"
	CodeTooManyRequests     = "ec5_255"
)

var messages = map[string]string{
	CodeProjectNotFound:     "Project does not exist.",
	CodeRequired:            "Required field is missing.",
	CodeInvalidUUID:         "Invalid uuid.",
	CodeInvalidValue:        "Invalid value.",
	CodeInvalidCredentials:  "Email or password is incorrect.",
	CodeTooLong:             "Too many values or value too long.",
	CodeNotLoggedIn:         "You must be logged in.",
	CodeSessionExpired:      "Your session has expired, please log in again.",
	CodeMissingPermission:   "You do not have permission to perform this action.",
	CodeServerError:         "Something went wrong, please try again.",
	CodeGeocoderFailed:      "Location lookup failed.",
	CodeInvalidProjectName:  "Project name is invalid.",
	CodeProjectNameMissing:  "Project name is missing.",
	CodeProjectImportFailed: "Project could not be imported.",
	CodeReservedProjectName: "Project name is not available.",
	CodeEntryDeleteFailed:   "Entries could not be deleted.",
	CodeTooManyRequests:     "Too many requests, please slow down.",
}

// Message returns the English message for code, or the code itself when unknown.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}

// RequiresLogin reports whether code means the caller must authenticate again.
func RequiresLogin(code string) bool {
	return code == CodeNotLoggedIn || code == CodeSessionExpired
}
