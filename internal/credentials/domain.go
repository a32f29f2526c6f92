package credentials

// Credentials authenticate one commit against one repository location. They
// are a plain value so they can travel with a commit task to a remote worker.
type Credentials struct {
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	PrivateKeyPath string `json:"private_key_path,omitempty"`
	Passphrase     string `json:"passphrase,omitempty"`
}

// IsZero reports whether no credential material is set.
func (c Credentials) IsZero() bool {
	return c == Credentials{}
}

// Redacted returns a copy without secrets.
func (c Credentials) Redacted() Credentials {
	c.Password = ""
	c.Passphrase = ""
	return c
}

// Entry binds credentials to a project and a repository URL prefix. An empty
// project makes the entry global.
type Entry struct {
	Project     string      `validate:"max=200"`
	URLPrefix   string      `validate:"required,max=2048"`
	Credentials Credentials `validate:"-"`
}

// Provider is the authentication capability resolved for a single
// (project, location) pair.
type Provider struct {
	// Source describes where the credentials came from, never the secret.
	Source      string
	Credentials Credentials
}
