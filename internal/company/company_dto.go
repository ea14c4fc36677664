package company

// CompanyForm is bound from the multipart create/update form. The logo part
// is extracted separately by the handler.
type CompanyForm struct {
	Name    string `form:"name" binding:"required,max=255"`
	Email   string `form:"email" binding:"omitempty,email,max=255"`
	Website string `form:"website" binding:"omitempty,url,max=255"`
}

// LogoUpload carries an uploaded logo into the service, decoupled from the
// HTTP multipart machinery.
type LogoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

type CompanyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Website   string `json:"website,omitempty"`
	Logo      string `json:"logo,omitempty"`
	LogoURL   string `json:"logo_url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// OptionResponse is the slim id/name pair used by form dropdowns.
type OptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListResponse struct {
	Companies []CompanyResponse `json:"companies"`
	Flash     string            `json:"flash,omitempty"`
}

// MutationResult is what every mutating operation returns: the affected
// record (when one survives), a one-shot confirmation message, and the
// listing route the caller should land on.
type MutationResult struct {
	Company  *CompanyResponse `json:"company,omitempty"`
	Message  string           `json:"message"`
	Redirect string           `json:"redirect"`
}
