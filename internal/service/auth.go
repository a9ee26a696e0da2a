package service

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func ValidateCredentialsRequest(req *CredentialsRequest) error {
	return validate.Struct(req)
}
