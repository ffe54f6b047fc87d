package handler

type contactRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"max=50"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,max=10000"`
}

type consultationRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"max=50"`
	Company string `json:"company" validate:"max=255"`
	Website string `json:"website" validate:"max=500"`
	Service string `json:"service" validate:"max=255"`
	Budget  string `json:"budget"  validate:"max=100"`
	Message string `json:"message" validate:"max=10000"`
}

type formResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
