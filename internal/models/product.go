package models

// Product represents a single battery reference in the inventory.
type Product struct {
	Code        string `json:"codigo"`
	Description string `json:"descripcion"`
	Quantity    int    `json:"cantidad"`
}
