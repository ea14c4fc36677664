package employee

type EmployeeForm struct {
	FirstName string `form:"first_name" binding:"required,max=255"`
	LastName  string `form:"last_name" binding:"required,max=255"`
	CompanyID string `form:"company_id" binding:"required"`
	Email     string `form:"email" binding:"omitempty,email,max=255"`
	Phone     string `form:"phone" binding:"omitempty,max=255"`
}

type CompanySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID        string          `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	CompanyID string          `json:"company_id"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Company   *CompanySummary `json:"company,omitempty"`
}

type ListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	// Company is the filter's display context, set only when the listing is
	// scoped to one company.
	Company *CompanySummary `json:"company,omitempty"`
	Flash   string          `json:"flash,omitempty"`
}

// MutationResult carries the confirmation message and the listing route the
// caller lands on; Redirect preserves the acting company filter.
type MutationResult struct {
	Employee *EmployeeResponse `json:"employee,omitempty"`
	Message  string            `json:"message"`
	Redirect string            `json:"redirect"`
}
