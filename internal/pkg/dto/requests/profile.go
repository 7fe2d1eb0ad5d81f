package requests

type UpdateProfile struct {
	Birthdate   string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	University  string `json:"university" validate:"omitempty,max=200"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
}
