package oauth

// RedirectRequest is posted to an app to start an authorization flow.
type RedirectRequest struct {
	State     string `json:"state"`
	ReturnURL string `json:"returnUrl"`
}

// ValidateRequest is posted to an app to exchange an authorization code.
type ValidateRequest struct {
	Code        string `json:"code"`
	RedirectURL string `json:"redirectUrl"`
}
