package model

type EngageResponse struct {
	Engaged   bool   `json:"engaged"`
	Activated bool   `json:"activated"`
	Session   string `json:"session"`
}

type StateResponse struct {
	State   string `json:"state"`
	Session string `json:"session,omitempty"`
	Moves   int    `json:"moves"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
