package dto

type EmployeeRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	DOB         string `json:"dob"`
	HireDate    string `json:"hireDate"`
	JobTitle    string `json:"jobTitle"`
	Department  string `json:"department"`
	Salary      Number `json:"salary"`
	Profile     string `json:"profile"`
}

type EmployeeProfile struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Profile   string `json:"profile"`
}

type CreatedResponse struct {
	Success bool `json:"success"`
	ID      uint `json:"id"`
}
