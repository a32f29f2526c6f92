// Package main svncommit post-build commit step and worker API
//
//	@title			svncommit worker API
//	@version		1.0.0
//	@description	svncommit commits build working copies back to Subversion or Git repositories
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host			localhost:3000
//	@BasePath		/api/v1
package main

import "github.com/apiarycd/svncommit/internal"

func main() {
	internal.Run()
}
