package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type PublishResponse struct {
	Success bool          `json:"success"`
	State   PlaybackState `json:"state"`
}

type SessionInfo struct {
	SessionId string `json:"sessionId"`
	HostToken string `json:"hostToken"`
}
