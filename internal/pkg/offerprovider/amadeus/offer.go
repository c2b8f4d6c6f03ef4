package amadeus

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type searchResponse struct {
	Data []rawOffer `json:"data"`
}

type rawOffer struct {
	ID                     string    `json:"id"`
	Itineraries            []rawTrip `json:"itineraries"`
	Price                  rawPrice  `json:"price"`
	ValidatingAirlineCodes []string  `json:"validatingAirlineCodes"`
	NumberOfBookableSeats  int       `json:"numberOfBookableSeats"`
}

type rawTrip struct {
	Duration string       `json:"duration"` // ISO-8601, e.g. PT2H35M
	Segments []rawSegment `json:"segments"`
}

type rawSegment struct {
	Departure   rawEndpoint `json:"departure"`
	Arrival     rawEndpoint `json:"arrival"`
	CarrierCode string      `json:"carrierCode"`
}

type rawEndpoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"` // local time, 2006-01-02T15:04:05
}

type rawPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}
