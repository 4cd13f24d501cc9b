package dto

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Company string `json:"company" binding:"max=200"`
	Project string `json:"project" binding:"omitempty,oneof=depin defi gaming nft infrastructure other"`
	Message string `json:"message" binding:"required,max=5000"`
}
