package model

type MeasureLayoutRequestBody struct {
	Events          []Event         `json:"events"`
	Clef            Clef            `json:"clef"`
	IsPickup        bool            `json:"is_pickup"`
	TotalQuants     int             `json:"total_quants"`
	ForcedPositions map[int]float64 `json:"forced_positions"`
}

type StaffMeasureBody struct {
	Clef    Clef    `json:"clef"`
	Measure Measure `json:"measure"`
}

type SystemLayoutRequestBody struct {
	Measures []StaffMeasureBody `json:"measures"`
}

type SystemLayoutResponse struct {
	System   SystemLayout    `json:"system"`
	Measures []MeasureLayout `json:"measures"`
}

type BeamsRequestBody struct {
	Events         []Event            `json:"events"`
	EventPositions map[string]float64 `json:"event_positions"`
	Clef           Clef               `json:"clef"`
}

type AccidentalsRequestBody struct {
	Events       []Event `json:"events"`
	KeySignature string  `json:"key_signature"`
}

type PlacementRequestBody struct {
	Events        []Event `json:"events"`
	IntendedQuant int     `json:"intended_quant"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
