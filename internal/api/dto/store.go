package dto

type StoreResponse struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Enabled   bool    `json:"enabled"`
}

type ListStoresResponse struct {
	Stores []StoreResponse `json:"stores"`
}
