package ai

// ToWireRole maps a display role to the generation API's role vocabulary.
// "user" passes through; everything else is an assistant turn and becomes
// "model".
func ToWireRole(role string) string {
	if role == RoleUser {
		return RoleUser
	}
	return "model"
}

// FromWireRole is the inverse of ToWireRole on the two-role domain.
func FromWireRole(role string) string {
	if role == RoleUser {
		return RoleUser
	}
	return RoleAssistant
}
