package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreatePlayerRequest is the request body for adding a map player.
// An empty colour asks the server to pick a free palette colour.
type CreatePlayerRequest struct {
	PlayerID string `json:"player_id"`
	Colour   string `json:"colour,omitempty"`
}

// UpdateVisitsRequest is the request body for replacing a player's visits
type UpdateVisitsRequest struct {
	Codes []string `json:"codes"`
}
