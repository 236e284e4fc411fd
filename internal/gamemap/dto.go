package gamemap

type PlacePinRequest struct {
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Title       string      `json:"title" validate:"required,max=120"`
	Description string      `json:"description" validate:"max=1000"`
	Category    PinCategory `json:"category"`
}
