package api

type DocumentResponse struct {
	Text    string `json:"text"`
	Summary string `json:"summary"`
	Chunks  int    `json:"chunks"`
}

type DocumentParams struct {
	Mode string `schema:"mode"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
