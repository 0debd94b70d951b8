package models

import "time"

type Employee struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	Email       string     `gorm:"size:255;index" json:"email"`
	Phone       string     `gorm:"size:50" json:"phone"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	HireDate    *time.Time `gorm:"type:date" json:"hire_date"`
	JobTitle    string     `gorm:"size:100" json:"job_title"`
	Department  string     `gorm:"size:100" json:"department"`
	Salary      float64    `gorm:"type:numeric(12,2)" json:"salary"`
	Profile     string     `gorm:"type:text" json:"profile"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

const RoleAdmin = "admin"

// EmployeeAuth stores staff credentials apart from the employee profile.
type EmployeeAuth struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeID   uint      `gorm:"not null;uniqueIndex" json:"employee_id"`
	Username     string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (EmployeeAuth) TableName() string {
	return "employee_auths"
}
