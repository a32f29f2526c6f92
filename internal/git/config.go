package git

import "time"

type Config struct {
	AuthorName  string
	AuthorEmail string
	Remote      string
	Timeout     time.Duration
}
