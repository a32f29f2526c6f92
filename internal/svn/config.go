package svn

import "time"

type Config struct {
	Binary          string
	Timeout         time.Duration
	TrustServerCert bool
}
