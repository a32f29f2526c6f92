package credentials

// PUTRequest represents the request payload for storing credentials.
type PUTRequest struct {
	Project        string `json:"project"                    validate:"max=200"`
	URLPrefix      string `json:"url_prefix"                 validate:"required,max=2048"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	PrivateKeyPath string `json:"private_key_path,omitempty"`
	Passphrase     string `json:"passphrase,omitempty"`
}

// DeleteQuery identifies a stored entry.
type DeleteQuery struct {
	Project   string `query:"project"`
	URLPrefix string `query:"url_prefix" validate:"required"`
}

// EntryResponse represents a stored entry without secrets.
type EntryResponse struct {
	Project        string `json:"project"`
	URLPrefix      string `json:"url_prefix"`
	Username       string `json:"username,omitempty"`
	PrivateKeyPath string `json:"private_key_path,omitempty"`
}
