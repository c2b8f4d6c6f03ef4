package kiwi

type searchResponse struct {
	Data []rawOffer `json:"data"`
}

// Tequila-style one-way itinerary.
type rawOffer struct {
	ID             string      `json:"id"`
	FlyFrom        string      `json:"flyFrom"`
	FlyTo          string      `json:"flyTo"`
	LocalDeparture string      `json:"local_departure"` // RFC3339
	LocalArrival   string      `json:"local_arrival"`
	Price          float64     `json:"price"`
	Airlines       []string    `json:"airlines"`
	Duration       rawDuration `json:"duration"`
	Route          []rawHop    `json:"route"`
	Availability   rawSeats    `json:"availability"`
}

type rawDuration struct {
	Total int `json:"total"` // seconds
}

type rawHop struct {
	Airline        string `json:"airline"`
	LocalDeparture string `json:"local_departure"`
	LocalArrival   string `json:"local_arrival"`
}

type rawSeats struct {
	Seats *int `json:"seats"`
}
