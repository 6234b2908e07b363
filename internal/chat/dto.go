package chat

type AskRequest struct {
	SessionID string `json:"sessionId"`
	Question  string `json:"question"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
