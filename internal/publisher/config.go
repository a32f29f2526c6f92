package publisher

import "github.com/apiarycd/svncommit/internal/scm"

type Config struct {
	Kind     scm.Kind
	Template string
}
