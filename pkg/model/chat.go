package model

// ChatTurn is one prior exchange in the assistant conversation,
// shaped the way the generative-language API expects history.
type ChatTurn struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required"`
}

type ChatRequest struct {
	Message string     `json:"message" validate:"required,max=4000"`
	History []ChatTurn `json:"history,omitempty" validate:"omitempty,max=50,dive"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}
