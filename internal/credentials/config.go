package credentials

// Config holds fallback credentials used when no stored entry matches.
type Config struct {
	DefaultUsername   string
	DefaultPassword   string
	DefaultPrivateKey string
	DefaultPassphrase string
}

func (c Config) defaults() Credentials {
	return Credentials{
		Username:       c.DefaultUsername,
		Password:       c.DefaultPassword,
		PrivateKeyPath: c.DefaultPrivateKey,
		Passphrase:     c.DefaultPassphrase,
	}
}
