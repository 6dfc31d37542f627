package models

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type ProfileUpdateResponse struct {
	Message string  `json:"message"`
	User    Profile `json:"user"`
}

type PostCreatedResponse struct {
	Message string     `json:"message"`
	Post    *SkillPost `json:"post"`
}

type ConnectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegisterErrorResponse keeps the register route's message-keyed error shape.
type RegisterErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
