package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every domain handler so services can be
// assembled from the same application shell.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
