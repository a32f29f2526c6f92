package git

import (
	"fmt"

	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/go-git/go-git/v6/plumbing/transport"
	"github.com/go-git/go-git/v6/plumbing/transport/http"
	"github.com/go-git/go-git/v6/plumbing/transport/ssh"
)

func newAuth(creds credentials.Credentials) (transport.AuthMethod, error) {
	switch {
	case creds.PrivateKeyPath != "":
		user := creds.Username
		if user == "" {
			user = "git"
		}
		auth, err := ssh.NewPublicKeysFromFile(user, creds.PrivateKeyPath, creds.Passphrase)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
		}
		return auth, nil
	case creds.Username != "" || creds.Password != "":
		return &http.BasicAuth{
			Username: creds.Username,
			Password: creds.Password,
		}, nil
	default:
		return nil, nil
	}
}
