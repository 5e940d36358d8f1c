package models

type Vehicle struct {
	ID       string `json:"id"`
	OwnerID  string `json:"ownerId"`
	Plate    string `json:"plate"`
	Model    string `json:"model"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
}
